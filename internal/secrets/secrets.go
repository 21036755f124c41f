// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads API keys from a directory of plain-text files and
// from a dotenv file. Each file in the directory represents one secret: the
// filename is the key name and the file contents (trimmed) are the value.
//
// Supported key files: openai-api-key, anthropic-api-key, semantic-scholar-api-key.
package secrets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

// Key pairs a secrets-directory filename with its environment variable.
type Key struct {
	File string
	Env  string
}

var (
	OpenAIKey          = Key{File: "openai-api-key", Env: "OPENAI_API_KEY"}
	AnthropicKey       = Key{File: "anthropic-api-key", Env: "ANTHROPIC_API_KEY"}
	SemanticScholarKey = Key{File: "semantic-scholar-api-key", Env: "SEMANTIC_SCHOLAR_API_KEY"}
)

// Set holds secrets from the secrets directory and from a dotenv file.
type Set struct {
	Files  map[string]string
	Dotenv map[string]string
}

// Load reads all files in dir and returns a map of filename to trimmed contents.
// A missing directory or missing files are not errors; Load returns an empty map.
// Unreadable files produce a warning on stderr but do not abort.
func Load(dir string) (map[string]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	secrets := make(map[string]string)
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		name := entry.Name()

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not read secret %s: %v\n", name, err)
			continue
		}

		if value := strings.TrimSpace(string(data)); value != "" {
			secrets[name] = value
		}
	}

	return secrets, nil
}

// LoadEnvFile parses a dotenv file without touching the process environment.
// A missing file yields an empty map.
func LoadEnvFile(path string) (map[string]string, error) {
	env, err := godotenv.Read(path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading env file %s: %w", path, err)
	}
	return env, nil
}

// LoadSet loads the secrets directory and the dotenv file together.
func LoadSet(dir, envFile string) (Set, error) {
	files, err := Load(dir)
	if err != nil {
		return Set{}, err
	}
	env, err := LoadEnvFile(envFile)
	if err != nil {
		return Set{}, err
	}
	return Set{Files: files, Dotenv: env}, nil
}

// Resolve returns the value for k: the secrets file first, then the process
// environment, then the dotenv file. It returns "" when none define it.
func (s Set) Resolve(k Key) string {
	if v := s.Files[k.File]; v != "" {
		return v
	}
	if v := strings.TrimSpace(os.Getenv(k.Env)); v != "" {
		return v
	}
	return strings.TrimSpace(s.Dotenv[k.Env])
}

// Count returns the number of loaded secrets across both sources.
func (s Set) Count() int {
	return len(s.Files) + len(s.Dotenv)
}
