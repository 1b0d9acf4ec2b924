// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package cli implements the vault command-line interface on top of cobra.
//
// Command tree:
//
//	vault user register <username>
//	vault user list
//	vault user delete <username>
//	vault user avatar <username> -o <file>
//	vault item add <username>
//	vault item list <username>
//	vault item copy <username> <id>
//	vault item delete <username> <id>
//	vault generate
//	vault version
//
// Configuration flags (-dsn, -driver, -log-level, -log-file, -config) are
// shared by every command and merged with the environment and the optional
// JSON file by the config package. Every command that touches the vault
// opens the database, runs its operation and closes the database again, so
// a session never outlives a single invocation. Log entries of one
// invocation share an invocation_id field.
//
// Passwords and PINs are read from the terminal without echo unless they are
// passed as flags. When stdin is not a terminal they are read line by line.
package cli
