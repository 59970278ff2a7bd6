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

var installCommand = &cli.Command{
	Name:      "install",
	Usage:     "index a DING file into the data directory",
	ArgsUsage: "DING_FILE",
	Action:    runInstall,
}

func runInstall(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.Exit("expected a single DING_FILE argument", 1)
	}
	dingPath := c.Args().Get(0)
	rootDir := c.String(dataDirFlag.Name)

	lastPct := -1
	progress := func(p deen.Progress) {
		switch p.State {
		case deen.StateStarting:
			fmt.Println("starting install...")
		case deen.StateIndexing:
			pct := int(p.Fraction * 100)
			if pct != lastPct {
				lastPct = pct
				fmt.Printf("indexing: %d%%\n", pct)
			}
		case deen.StateCompleted:
			fmt.Println("done.")
		case deen.StateIdle:
			fmt.Println("cancelled.")
		case deen.StateError:
			fmt.Println("failed.")
		}
	}

	if err := deen.Install(context.Background(), rootDir, dingPath, progress, nil); err != nil {
		return cli.Exit(fmt.Sprintf("install failed: %v", err), 1)
	}
	return nil
}
