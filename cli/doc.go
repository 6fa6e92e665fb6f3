// Package cli contains the command line interface for the interpreter.
//
// # Usage
//
//	rinha --file program.json
//	rinha -f - < program.json
//
// With no --file flag, the program source defaults to
// /var/rinha/source.rinha.json.
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (json, text)
//   - --log-output: Write logs to one or more files ('-' for stderr)
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof -o rinha .
//
//   - --pprof-mode: Enable profiling (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: Set profile output directory
//
// # Configuration File
//
// An optional YAML file at the OS configuration directory (e.g.
// ~/.config/rinha/config.yaml) supplies defaults for any flag above,
// keyed by flag name with hyphens or underscores. Command-line flags
// always override it.
package cli
