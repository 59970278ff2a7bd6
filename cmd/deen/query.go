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
	"strings"

	"github.com/rodaine/table"
	"github.com/urfave/cli/v2"

	"github.com/dingsearch/deen"
)

var queryCommand = &cli.Command{
	Name:      "query",
	Usage:     "look up a word or phrase in the installed dictionary",
	ArgsUsage: "QUERY...",
	Flags: []cli.Flag{
		&cli.IntFlag{
			Name:  "max-results",
			Value: 20,
			Usage: "maximum number of results to show",
		},
	},
	Action: runQuery,
}

func runQuery(c *cli.Context) error {
	if c.NArg() == 0 {
		return cli.Exit("expected a query", 1)
	}
	rootDir := c.String(dataDirFlag.Name)

	d, err := deen.Open(rootDir)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	defer d.Close()

	query := strings.Join(c.Args().Slice(), " ")
	results, err := d.Lookup(context.Background(), query, c.Int("max-results"))
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	tbl := table.New("German", "English", "Distance")
	for _, r := range results {
		tbl.AddRow(r.German(), r.English(), r.Distance())
	}
	tbl.Print()
	return nil
}
