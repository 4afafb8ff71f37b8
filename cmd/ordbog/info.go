// Copyright 2026 Ian Lewis
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rodaine/table"
	"github.com/urfave/cli/v2"

	"github.com/ianlewis/go-ordbog/babylon"
	"github.com/ianlewis/go-ordbog/stardict"
)

var infoCommand = &cli.Command{
	Name:      "info",
	Usage:     "print information about glossaries",
	ArgsUsage: "FILE...",
	Description: "Prints the metadata of StarDict dictionaries (.ifo files) and Babylon\n" +
		"glossary sources.",
	Action: func(c *cli.Context) error {
		if c.NArg() == 0 {
			return fmt.Errorf("%w: expected at least one FILE", ErrFlagParse)
		}

		var errs []error
		for i, path := range c.Args().Slice() {
			if i > 0 {
				fmt.Fprintln(c.App.Writer)
			}
			if err := printInfo(c.App.Writer, path); err != nil {
				fmt.Fprintf(c.App.ErrWriter, "%s: %v\n", path, err)
				errs = append(errs, err)
			}
		}
		if len(errs) > 0 {
			return fmt.Errorf("%w: %d of %d files could not be read", ErrOrdbog, len(errs), c.NArg())
		}
		return nil
	},
}

func printInfo(w io.Writer, path string) error {
	if strings.EqualFold(filepath.Ext(path), ".ifo") {
		return printStardictInfo(w, path)
	}
	return printBabylonInfo(w, path)
}

func printStardictInfo(w io.Writer, path string) error {
	d, err := stardict.Open(path)
	if err != nil {
		return err //nolint:wrapcheck // printed with the path
	}
	defer d.Close()

	info := d.Info()
	tbl := table.New("Field", "Value").WithWriter(w)
	tbl.AddRow("path", path)
	tbl.AddRow("format", "stardict "+info.Version)
	tbl.AddRow("bookname", info.BookName)
	tbl.AddRow("author", info.Author)
	if info.Email != "" {
		tbl.AddRow("email", info.Email)
	}
	if info.Website != "" {
		tbl.AddRow("website", info.Website)
	}
	tbl.AddRow("words", info.WordCount)
	tbl.AddRow("synonyms", info.SynWordCount)
	tbl.AddRow("type", info.SameTypeSequence)
	tbl.Print()
	return nil
}

func printBabylonInfo(w io.Writer, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err //nolint:wrapcheck // printed with the path
	}
	defer f.Close()

	s := babylon.NewScanner(f)
	articles, words := 0, 0
	for s.Scan() {
		articles++
		words += len(s.Article().Words)
	}
	if err := s.Err(); err != nil {
		return err //nolint:wrapcheck // printed with the path
	}

	header := s.Header()
	tbl := table.New("Field", "Value").WithWriter(w)
	tbl.AddRow("path", path)
	tbl.AddRow("format", "babylon")
	tbl.AddRow("bookname", header["bookname"])
	tbl.AddRow("author", header["author"])
	tbl.AddRow("articles", articles)
	tbl.AddRow("words", words)
	tbl.Print()
	return nil
}
