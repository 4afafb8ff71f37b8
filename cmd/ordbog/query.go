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
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/k3a/html2text"
	"github.com/urfave/cli/v2"

	"github.com/ianlewis/go-ordbog/stardict"
)

var queryCommand = &cli.Command{
	Name:      "query",
	Usage:     "search a StarDict dictionary",
	ArgsUsage: "DICT WORD",
	Description: "Searches the StarDict dictionary DICT for WORD. DICT is the path of the\n" +
		"dictionary's .ifo file or its name in one of the data directories.",
	Flags: []cli.Flag{
		&cli.StringSliceFlag{
			Name:    "data-dir",
			Usage:   "look for dictionaries in `DIR`",
			Aliases: []string{"d"},
			Value:   cli.NewStringSlice(dictLocations()...),
		},
		&cli.BoolFlag{
			Name:  "prefix",
			Usage: "list the words starting with WORD",
		},
		&cli.BoolFlag{
			Name:  "raw",
			Usage: "print articles as HTML",
		},
	},
	Action: func(c *cli.Context) error {
		if c.NArg() != 2 {
			return fmt.Errorf("%w: expected DICT and WORD, got %d arguments", ErrFlagParse, c.NArg())
		}

		path, err := findDictionary(c.Args().Get(0), c.StringSlice("data-dir"))
		if err != nil {
			return err
		}
		d, err := stardict.Open(path)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrOrdbog, err)
		}
		defer d.Close()

		word := c.Args().Get(1)
		var articles []*stardict.Article
		if c.Bool("prefix") {
			articles, err = d.Prefix(word)
		} else {
			articles, err = d.Search(word)
		}
		if err != nil {
			return fmt.Errorf("%w: %w", ErrOrdbog, err)
		}
		if len(articles) == 0 {
			return fmt.Errorf("%w: %q in %s", ErrNotFound, word, d.Info().BookName)
		}

		return printArticles(c.App.Writer, articles, c.Bool("raw"))
	},
}

// findDictionary returns the path of the .ifo file of a dictionary given by
// path or by name.
func findDictionary(name string, dirs []string) (string, error) {
	if _, err := os.Stat(name); err == nil {
		return name, nil
	}
	if !strings.HasSuffix(strings.ToLower(name), ".ifo") {
		name += ".ifo"
	}
	for _, dir := range dirs {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%w: %w", ErrOrdbog, err)
		}
	}
	return "", fmt.Errorf("%w: dictionary %q", ErrNotFound, name)
}

func printArticles(w io.Writer, articles []*stardict.Article, raw bool) error {
	for i, a := range articles {
		if i > 0 {
			fmt.Fprintln(w)
		}
		body := string(a.Data)
		if !raw {
			body = html2text.HTML2Text(body)
		}
		if _, err := fmt.Fprintf(w, "%s\n%s\n", a.Word, body); err != nil {
			return fmt.Errorf("%w: printing article: %w", ErrOrdbog, err)
		}
	}
	return nil
}
