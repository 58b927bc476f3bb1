// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

// sqlscalar evaluates SQL scalar expressions from the command line.
package main

import "github.com/cockroachdb/sqlscalar/pkg/cli"

func main() {
	cli.Main()
}
