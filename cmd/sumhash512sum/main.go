// Command sumhash512sum computes and verifies Sumhash512 digests, in the
// style of the coreutils *sum family: by default it prints a hex digest per
// input file (or stdin, with no arguments); --check verifies a manifest of
// previously printed digest lines instead.
package main

import (
	"bufio"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dragmz/sumhash"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "sumhash512sum",
		Usage: "compute or verify Sumhash512 digests",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "salt",
				Usage: "hex-encoded 64-byte salt",
			},
			&cli.BoolFlag{
				Name:  "check",
				Usage: "read digests from the given files and verify them",
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "sumhash512sum:", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	salt, err := decodeSalt(c.String("salt"))
	if err != nil {
		return err
	}

	if c.Bool("check") {
		return runCheck(c.Args().Slice(), salt)
	}
	return runSum(c.Args().Slice(), salt)
}

func decodeSalt(hexSalt string) ([]byte, error) {
	if hexSalt == "" {
		return nil, nil
	}
	salt, err := hex.DecodeString(hexSalt)
	if err != nil {
		return nil, fmt.Errorf("invalid --salt: %w", err)
	}
	if len(salt) != sumhash.SaltSize {
		return nil, fmt.Errorf("invalid --salt: must decode to %d bytes, got %d", sumhash.SaltSize, len(salt))
	}
	return salt, nil
}

func newHasher(salt []byte) (*sumhash.Digest, error) {
	if salt == nil {
		return sumhash.New(), nil
	}
	return sumhash.NewSalted(salt)
}

func hashReader(r io.Reader, salt []byte) (string, error) {
	d, err := newHasher(salt)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(d, r); err != nil {
		return "", err
	}
	return hex.EncodeToString(d.Sum(nil)), nil
}

func runSum(paths []string, salt []byte) error {
	if len(paths) == 0 {
		sum, err := hashReader(os.Stdin, salt)
		if err != nil {
			return err
		}
		fmt.Printf("%s  -\n", sum)
		return nil
	}

	var failed bool
	for _, path := range paths {
		sum, err := hashFile(path, salt)
		if err != nil {
			fmt.Fprintln(os.Stderr, "sumhash512sum:", err)
			failed = true
			continue
		}
		fmt.Printf("%s  %s\n", sum, path)
	}
	if failed {
		return fmt.Errorf("failed to hash one or more files")
	}
	return nil
}

func hashFile(path string, salt []byte) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	return hashReader(f, salt)
}

// runCheck reads each manifest in paths (lines of "<hex digest>  <name>") and
// recomputes the digest of every named file, reporting any mismatch.
func runCheck(manifests []string, salt []byte) error {
	if len(manifests) == 0 {
		return fmt.Errorf("--check requires at least one manifest file")
	}

	var mismatches, errored int
	for _, manifest := range manifests {
		f, err := os.Open(manifest)
		if err != nil {
			fmt.Fprintln(os.Stderr, "sumhash512sum:", err)
			errored++
			continue
		}

		scanner := bufio.NewScanner(f)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}
			want, name, ok := splitManifestLine(line)
			if !ok {
				fmt.Fprintf(os.Stderr, "sumhash512sum: malformed line: %q\n", line)
				errored++
				continue
			}

			got, err := hashFile(name, salt)
			if err != nil {
				fmt.Fprintln(os.Stderr, "sumhash512sum:", err)
				errored++
				continue
			}

			if got != want {
				fmt.Printf("%s: FAILED\n", name)
				mismatches++
			} else {
				fmt.Printf("%s: OK\n", name)
			}
		}
		f.Close()

		if err := scanner.Err(); err != nil {
			fmt.Fprintln(os.Stderr, "sumhash512sum:", err)
			errored++
		}
	}

	if mismatches > 0 || errored > 0 {
		return fmt.Errorf("%d mismatch(es), %d error(s)", mismatches, errored)
	}
	return nil
}

func splitManifestLine(line string) (digest, name string, ok bool) {
	fields := strings.SplitN(line, "  ", 2)
	if len(fields) != 2 {
		return "", "", false
	}
	return fields[0], fields[1], true
}
