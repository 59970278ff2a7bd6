// Copyright 2025 Ian Lewis
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/dingsearch/deen"
)

var infoCommand = &cli.Command{
	Name:   "info",
	Usage:  "show whether a dictionary is installed",
	Action: runInfo,
}

func runInfo(c *cli.Context) error {
	rootDir := c.String(dataDirFlag.Name)

	if !deen.IsInstalled(rootDir) {
		fmt.Printf("no dictionary installed under %s\n", rootDir)
		return nil
	}

	d, err := deen.Open(rootDir)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	defer d.Close()

	count, err := d.WordCount(context.Background())
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	fmt.Printf("dictionary installed under %s\n", rootDir)
	fmt.Printf("%d words indexed\n", count)
	return nil
}
