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

package config

import (
	"errors"
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
)

// ErrConfig is the parent error of all configuration errors.
var ErrConfig = errors.New("config")

// Load reads configuration from the YAML file at path and environment
// variables. Priority: ENV > YAML > defaults (via env-default tags). An empty
// path loads configuration from ENV + defaults only.
//
// Load does not validate the configuration so that callers can apply
// overrides first.
func Load(path string) (*Config, error) {
	var cfg Config

	if path != "" {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("%w: read %s: %w", ErrConfig, path, err)
		}
		return &cfg, nil
	}

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("%w: read env: %w", ErrConfig, err)
	}
	return &cfg, nil
}

// Usage returns a description of the environment variables read by Load.
func Usage() (string, error) {
	var cfg Config
	//nolint:wrapcheck // description only
	return cleanenv.GetDescription(&cfg, nil)
}
