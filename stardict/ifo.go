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

package stardict

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
)

const ifoMagic = "StarDict's dict ifo file"

// Version is the StarDict format version written by Writer.
const Version = "2.4.2"

var keyRegex = regexp.MustCompile("^[a-zA-Z0-9-_]+$")

var (
	// ErrInvalidInfo indicates a malformed .ifo file.
	ErrInvalidInfo = errors.New("invalid ifo")

	// ErrUnsupportedVersion indicates an .ifo version other than 2.4.2 or 3.0.0.
	ErrUnsupportedVersion = errors.New("unsupported version")
)

// Info is the metadata of a dictionary stored in its .ifo file.
type Info struct {
	Version          string
	BookName         string
	WordCount        int
	SynWordCount     int
	IdxFileSize      int64
	IdxOffsetBits    int
	Author           string
	Email            string
	Website          string
	Description      string
	Date             string
	SameTypeSequence string

	metadata map[string]string
}

// Value returns the raw value of the given .ifo key.
func (i *Info) Value(key string) string {
	return i.metadata[key]
}

// ReadInfo reads dictionary metadata from an .ifo file.
func ReadInfo(r io.Reader) (*Info, error) {
	metadata := map[string]string{}
	s := bufio.NewScanner(bufio.NewReader(r))
	if !s.Scan() || strings.TrimRight(s.Text(), "\r") != ifoMagic {
		if err := s.Err(); err != nil {
			return nil, fmt.Errorf("reading ifo: %w", err)
		}
		return nil, fmt.Errorf("%w: bad magic data", ErrInvalidInfo)
	}

	i := 0
	for s.Scan() {
		line := strings.TrimRight(s.Text(), "\r")
		if strings.Trim(line, " ") == "" {
			continue
		}
		k, v, ok := strings.Cut(line, "=")
		if !ok {
			return nil, fmt.Errorf("%w: invalid line: %q", ErrInvalidInfo, line)
		}
		key := strings.TrimRight(k, " ")
		value := strings.TrimLeft(v, " ")
		if !keyRegex.MatchString(key) {
			return nil, fmt.Errorf("%w: invalid key: %q", ErrInvalidInfo, key)
		}
		if i == 0 && key != "version" {
			return nil, fmt.Errorf("%w: missing version", ErrInvalidInfo)
		}

		metadata[key] = value
		i++
	}
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("reading ifo: %w", err)
	}

	return newInfo(metadata)
}

func newInfo(metadata map[string]string) (*Info, error) {
	info := &Info{
		Version:          metadata["version"],
		BookName:         metadata["bookname"],
		Author:           metadata["author"],
		Email:            metadata["email"],
		Website:          metadata["website"],
		Description:      metadata["description"],
		Date:             metadata["date"],
		SameTypeSequence: metadata["sametypesequence"],
		IdxOffsetBits:    32,
		metadata:         metadata,
	}

	switch info.Version {
	case "2.4.2", "3.0.0":
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedVersion, info.Version)
	}

	if info.BookName == "" {
		return nil, fmt.Errorf("%w: missing bookname", ErrInvalidInfo)
	}

	var err error
	if info.WordCount, err = strconv.Atoi(metadata["wordcount"]); err != nil {
		return nil, fmt.Errorf("%w: bad wordcount: %w", ErrInvalidInfo, err)
	}
	if info.IdxFileSize, err = strconv.ParseInt(metadata["idxfilesize"], 10, 64); err != nil {
		return nil, fmt.Errorf("%w: bad idxfilesize: %w", ErrInvalidInfo, err)
	}
	if v := metadata["synwordcount"]; v != "" {
		if info.SynWordCount, err = strconv.Atoi(v); err != nil {
			return nil, fmt.Errorf("%w: bad synwordcount: %w", ErrInvalidInfo, err)
		}
	}
	if v := metadata["idxoffsetbits"]; v != "" && info.Version == "3.0.0" {
		if info.IdxOffsetBits, err = strconv.Atoi(v); err != nil {
			return nil, fmt.Errorf("%w: bad idxoffsetbits: %w", ErrInvalidInfo, err)
		}
	}

	return info, nil
}

// WriteTo writes the .ifo file. Empty optional values are omitted.
func (i *Info) WriteTo(w io.Writer) (int64, error) {
	var b strings.Builder
	b.WriteString(ifoMagic + "\n")

	kv := func(key, value string) {
		if value == "" {
			return
		}
		// Values are single line.
		value = strings.ReplaceAll(value, "\r\n", "<br>")
		value = strings.ReplaceAll(value, "\n", "<br>")
		b.WriteString(key + "=" + value + "\n")
	}

	version := i.Version
	if version == "" {
		version = Version
	}
	kv("version", version)
	kv("bookname", i.BookName)
	kv("wordcount", strconv.Itoa(i.WordCount))
	if i.SynWordCount > 0 {
		kv("synwordcount", strconv.Itoa(i.SynWordCount))
	}
	kv("idxfilesize", strconv.FormatInt(i.IdxFileSize, 10))
	if version == "3.0.0" && i.IdxOffsetBits == 64 {
		kv("idxoffsetbits", "64")
	}
	kv("author", i.Author)
	kv("email", i.Email)
	kv("website", i.Website)
	kv("description", i.Description)
	kv("date", i.Date)
	kv("sametypesequence", i.SameTypeSequence)

	n, err := io.WriteString(w, b.String())
	if err != nil {
		return int64(n), fmt.Errorf("writing ifo: %w", err)
	}
	return int64(n), nil
}
