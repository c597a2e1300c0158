/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"github.com/invopop/jsonschema"
	"gopkg.in/yaml.v3"

	"dirpx.dev/autoreg/apis"
)

// Spec is the declarative form of a Level, as read from YAML or TOML.
// Nil fields are unset and inherit from the parent level.
type Spec struct {
	CaseSensitive *bool   `yaml:"case_sensitive" toml:"case_sensitive" json:"case_sensitive,omitempty" jsonschema_description:"Keep identifiers as written instead of lowercasing them."`
	Prefix        *string `yaml:"prefix" toml:"prefix" json:"prefix,omitempty" validate:"omitempty,max=256" jsonschema_description:"Mandatory identifier prefix."`
	Suffix        *string `yaml:"suffix" toml:"suffix" json:"suffix,omitempty" validate:"omitempty,max=256" jsonschema_description:"Mandatory identifier suffix."`
	StripPrefix   *bool   `yaml:"strip_prefix" toml:"strip_prefix" json:"strip_prefix,omitempty"`
	StripSuffix   *bool   `yaml:"strip_suffix" toml:"strip_suffix" json:"strip_suffix,omitempty"`
	SnakeCase     *bool   `yaml:"snake_case" toml:"snake_case" json:"snake_case,omitempty"`
	Hyphen        *bool   `yaml:"hyphen" toml:"hyphen" json:"hyphen,omitempty"`
	Regex         *string `yaml:"regex" toml:"regex" json:"regex,omitempty" validate:"omitempty,regexp" jsonschema_description:"Full-match pattern replacing the default key check."`
	Recursive     *bool   `yaml:"recursive" toml:"recursive" json:"recursive,omitempty"`
	Redirect      *bool   `yaml:"redirect" toml:"redirect" json:"redirect,omitempty"`
	Overwrite     *bool   `yaml:"overwrite" toml:"overwrite" json:"overwrite,omitempty"`
	RegisterSelf  *bool   `yaml:"register_self" toml:"register_self" json:"register_self,omitempty"`

	Name    string   `yaml:"name" toml:"name" json:"name,omitempty" validate:"omitempty,max=256"`
	Aliases []string `yaml:"aliases" toml:"aliases" json:"aliases,omitempty" validate:"omitempty,unique,dive,required"`
	Skip    bool     `yaml:"skip" toml:"skip" json:"skip,omitempty"`
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func specValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		_ = validate.RegisterValidation("regexp", func(fl validator.FieldLevel) bool {
			_, err := regexp.Compile(fl.Field().String())
			return err == nil
		})
	})
	return validate
}

// Validate checks field constraints. Errors wrap apis.ErrInvalidConfig.
func (s Spec) Validate() error {
	if err := specValidator().Struct(s); err != nil {
		return fmt.Errorf("%w: %v", apis.ErrInvalidConfig, err)
	}
	return nil
}

// Options converts the spec into functional options, set fields only.
func (s Spec) Options() []Option {
	var opts []Option
	addBool := func(p *bool, fn func(bool) Option) {
		if p != nil {
			opts = append(opts, fn(*p))
		}
	}
	addBool(s.CaseSensitive, WithCaseSensitive)
	if s.Prefix != nil {
		opts = append(opts, WithPrefix(*s.Prefix))
	}
	if s.Suffix != nil {
		opts = append(opts, WithSuffix(*s.Suffix))
	}
	addBool(s.StripPrefix, WithStripPrefix)
	addBool(s.StripSuffix, WithStripSuffix)
	addBool(s.SnakeCase, WithSnakeCase)
	addBool(s.Hyphen, WithHyphen)
	if s.Regex != nil {
		opts = append(opts, WithRegex(*s.Regex))
	}
	addBool(s.Recursive, WithRecursive)
	addBool(s.Redirect, WithRedirect)
	addBool(s.Overwrite, WithOverwrite)
	addBool(s.RegisterSelf, WithRegisterSelf)
	if s.Name != "" {
		opts = append(opts, WithName(s.Name))
	}
	if len(s.Aliases) > 0 {
		opts = append(opts, WithAliases(s.Aliases...))
	}
	if s.Skip {
		opts = append(opts, WithSkip(true))
	}
	return opts
}

// LoadYAML decodes and validates a YAML spec. Unknown fields are rejected.
// An empty document yields an empty spec.
func LoadYAML(r io.Reader) (Spec, error) {
	var s Spec
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil && !errors.Is(err, io.EOF) {
		return Spec{}, fmt.Errorf("%w: yaml: %v", apis.ErrInvalidConfig, err)
	}
	return s, s.Validate()
}

// LoadTOML decodes and validates a TOML spec. Unknown keys are rejected.
func LoadTOML(r io.Reader) (Spec, error) {
	var s Spec
	md, err := toml.NewDecoder(r).Decode(&s)
	if err != nil {
		return Spec{}, fmt.Errorf("%w: toml: %v", apis.ErrInvalidConfig, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Spec{}, fmt.Errorf("%w: toml: unknown keys %v", apis.ErrInvalidConfig, undecoded)
	}
	return s, s.Validate()
}

// LoadFile reads a spec from path, choosing the format by extension
// (.yaml, .yml or .toml).
func LoadFile(path string) (Spec, error) {
	f, err := os.Open(path)
	if err != nil {
		return Spec{}, err
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return LoadYAML(f)
	case ".toml":
		return LoadTOML(f)
	default:
		return Spec{}, fmt.Errorf("%w: unsupported file type %q", apis.ErrInvalidConfig, filepath.Ext(path))
	}
}

// Schema returns the JSON Schema describing Spec.
func Schema() ([]byte, error) {
	r := &jsonschema.Reflector{ExpandedStruct: true, DoNotReference: true}
	s := r.Reflect(&Spec{})
	s.Title = "autoreg level options"
	return json.MarshalIndent(s, "", "  ")
}
