// Copyright (c) 2026 The Crewkerne Gazette.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration
for the Gazette terminal client.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

Callers that parse flags themselves (the cobra entry point) resolve the same
fallback chain through Resolve.

# Config Fields

  - Env: target environment, dev or prod (default: prod)
  - BaseURL: backend API base URL, resolved once from Env unless overridden
  - Timeout: request timeout applied uniformly (fixed at 20s)
  - DataDir: directory for local state, sessions and logs (default: ~/.gazette)
  - Verbose: enable debug logging

# CLI Flags

	-e         Environment (dev or prod)
	-u         Backend base URL override
	-data-dir  Local state directory
	-v         Verbose logging

# Environment Variables

Flags fall back to environment variables:

	GAZETTE_ENV      → -e
	GAZETTE_BASE_URL → -u
	GAZETTE_DATA_DIR → -data-dir

A .env file in the working directory is loaded first (via godotenv) so dev
setups can pin GAZETTE_ENV=dev without exporting anything. CLI flags take
precedence over environment variables.
*/
package cliparse
