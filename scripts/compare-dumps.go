package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/nspcc-dev/unitrie/cli/migrate"
	"github.com/urfave/cli"
)

type dump []migrate.AccountEntry

func readFile(path string) (dump, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	d := make(dump, 0)
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, err
	}
	return d, err
}

func (d dump) index() map[string]migrate.AccountEntry {
	res := make(map[string]migrate.AccountEntry, len(d))
	for _, e := range d {
		res[e.Key] = e
	}
	return res
}

// compare prints all account differences between a and b to w, it fails if
// there are any.
func compare(w io.Writer, a, b string) error {
	dumpA, err := readFile(a)
	if err != nil {
		return fmt.Errorf("reading file %s: %w", a, err)
	}
	dumpB, err := readFile(b)
	if err != nil {
		return fmt.Errorf("reading file %s: %w", b, err)
	}
	if len(dumpA) != len(dumpB) {
		fmt.Fprintf(w, "dump files differ in size: %d vs %d\n", len(dumpA), len(dumpB))
	}
	indexB := dumpB.index()
	fail := len(dumpA) != len(dumpB)
	for _, accA := range dumpA {
		accB, ok := indexB[accA.Key]
		if !ok {
			fail = true
			fmt.Fprintf(w, "account %s: missing in %s\n", accA.Key, b)
			continue
		}
		delete(indexB, accA.Key)
		if accA != accB {
			fail = true
			fmt.Fprintf(w, "account %s: mismatch: %+v vs %+v\n", accA.Key, accA, accB)
		}
	}
	for _, accB := range dumpB {
		if _, ok := indexB[accB.Key]; ok {
			fail = true
			fmt.Fprintf(w, "account %s: missing in %s\n", accB.Key, a)
		}
	}
	if fail {
		return errors.New("dumps differ")
	}
	return nil
}

func cliMain(c *cli.Context) error {
	a := c.Args().Get(0)
	b := c.Args().Get(1)
	if a == "" {
		return errors.New("no arguments given")
	}
	if b == "" {
		return errors.New("missing second argument")
	}
	return compare(c.App.Writer, a, b)
}

func main() {
	ctl := cli.NewApp()
	ctl.Name = "compare-dumps"
	ctl.Version = "1.0"
	ctl.Usage = "compare-dumps dumpA.json dumpB.json"
	ctl.Action = cliMain

	if err := ctl.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		fmt.Fprintln(os.Stderr, ctl.Usage)
		os.Exit(1)
	}
}
