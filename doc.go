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

// Package ordbog converts a bilingual dictionary export into glossary formats
// read by e-reader dictionary engines.
//
// The export is made of an SQLite index store of entry vectors and a blob
// file of entry records. Records are decoded into entries, enriched with
// inflected forms, consolidated into glossary groups sharing words and
// written as a Babylon glossary source, a StarDict dictionary or a Kindle
// dictionary source.
//
//	c, err := ordbog.NewConverter(&ordbog.Options{
//		IndexPath: "index.gdd",
//		BlobPath:  "entries.dat",
//		Direction: 1,
//		Outputs:   []ordbog.Output{{Format: ordbog.Babylon, Path: "ordbog.babylon"}},
//	})
//	if err != nil {
//		// ...
//	}
//	stats, err := c.Run(ctx)
package ordbog
