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
	"fmt"
	"os"
	"path/filepath"

	"github.com/common-nighthawk/go-figure"
	"github.com/urfave/cli/v2"
)

// dataDirFlag is the root directory an installed dictionary lives under.
var dataDirFlag = &cli.StringFlag{
	Name:    "data-dir",
	Aliases: []string{"d"},
	Usage:   "root directory the dictionary is installed under",
	Value:   defaultDataDir(),
	EnvVars: []string{"DEEN_DATA_DIR"},
}

func defaultDataDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".deen"
	}
	return filepath.Join(dir, "deen")
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "deen",
		Usage: "a German-English DING dictionary",
		Flags: []cli.Flag{dataDirFlag},
		Commands: []*cli.Command{
			installCommand,
			queryCommand,
			infoCommand,
			versionCommand,
		},
		Action: func(c *cli.Context) error {
			fig := figure.NewFigure("deen", "standard", true)
			fig.Print()
			fmt.Println()
			return cli.ShowAppHelp(c)
		},
	}
}
