// Command wiblconv converts a YDVR or TeamSurv foreign-format log into a
// WIBL binary file (spec §6.4).
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/wibl-org/wibl-go"
	"github.com/wibl-org/wibl-go/internal/utils"
	"github.com/wibl-org/wibl-go/pgn"
	"github.com/wibl-org/wibl-go/teamsurv"
	"github.com/wibl-org/wibl-go/ydvr"
)

func main() {
	input := flag.String("input", "", "path to the foreign-format log file")
	flag.StringVar(input, "i", "", "shorthand for -input")
	output := flag.String("output", "", "path to write the WIBL binary file")
	flag.StringVar(output, "o", "", "shorthand for -output")
	format := flag.String("format", "", "input format: ydvr, YDVR, teamsurv, TeamSurv")
	flag.StringVar(format, "f", "", "shorthand for -format")
	name := flag.String("name", "", "logger name stamped into the Metadata frame")
	flag.StringVar(name, "n", "", "shorthand for -name")
	id := flag.String("id", "", "logger id stamped into the Metadata frame (default: a generated UUID)")
	ignore := flag.String("ignore", "", "comma-separated list of PGNs to drop from the output")
	stats := flag.Bool("stats", false, "print a per-packet-type frame count summary")
	flag.BoolVar(stats, "s", false, "shorthand for -stats")
	prodinfo := flag.String("prodinfo", "", "path to write a JSON production-info summary")
	flag.StringVar(prodinfo, "p", "", "shorthand for -prodinfo")
	verbose := flag.Bool("verbose", false, "log every raw NMEA-0183 sentence as it is read")
	flag.Parse()

	if *input == "" || *output == "" || *format == "" {
		log.Println("# missing mandatory argument: -input, -output and -format are all required")
		os.Exit(1)
	}

	ignorePGNs, err := parseIgnoreList(*ignore)
	if err != nil {
		log.Printf("# invalid -ignore list: %v\n", err)
		os.Exit(1)
	}

	in, err := os.Open(*input)
	if err != nil {
		log.Fatal(err)
	}
	defer in.Close()

	var src wibl.PacketSource
	switch strings.ToLower(*format) {
	case "ydvr":
		src = ydvr.NewReader(in)
	case "teamsurv":
		src = teamsurv.NewReader(in)
	default:
		log.Printf("# unrecognised input format %q\n", *format)
		os.Exit(1)
	}

	out, err := os.Create(*output)
	if err != nil {
		log.Fatal(err)
	}
	defer out.Close()

	loggerID := *id
	if loggerID == "" {
		loggerID = uuid.NewString()
	}
	w := wibl.NewWriter(out, wibl.DefaultVersionInfo, wibl.Metadata{Name: *name, ID: loggerID})

	counts := map[wibl.PacketID]int{}
	var total, dropped int
	for {
		batch, err := src.Next()
		if err != nil {
			break
		}
		total++
		if batch.IsN2K() {
			if _, skip := ignorePGNs[batch.N2k.PGN]; skip {
				dropped++
				continue
			}
			res, ok := pgn.Build(*batch.N2k)
			if !ok {
				continue
			}
			if err := w.Record(res.ID, res.Buffer); err != nil {
				log.Fatal(err)
			}
			counts[res.ID]++
			continue
		}
		if *verbose {
			log.Printf("# nmea0183: %s\n", utils.FormatSpaces(batch.Nmea0183.Sentence))
		}
		buf := wibl.NewBuffer()
		buf.AppendU32(batch.Nmea0183.ElapsedMs)
		buf.AppendRaw(batch.Nmea0183.Sentence)
		if err := w.Record(wibl.PacketNMEAString, buf); err != nil {
			log.Fatal(err)
		}
		counts[wibl.PacketNMEAString]++
	}

	fmt.Printf("# read %d input records, dropped %d by ignore list\n", total, dropped)

	if *stats {
		for id, n := range counts {
			fmt.Printf("# %s: %d frames\n", id, n)
		}
	}
	if *prodinfo != "" {
		if err := writeProdInfo(*prodinfo, loggerID, counts); err != nil {
			log.Fatal(err)
		}
	}
}

func parseIgnoreList(s string) (map[uint32]struct{}, error) {
	out := map[uint32]struct{}{}
	if s == "" {
		return out, nil
	}
	for _, tok := range strings.Split(s, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		v, err := strconv.ParseUint(tok, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("%q: %w", tok, err)
		}
		out[uint32(v)] = struct{}{}
	}
	return out, nil
}

func writeProdInfo(path, loggerID string, counts map[wibl.PacketID]int) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	fmt.Fprintf(f, "{\n  \"logger_id\": %q,\n  \"frame_counts\": {\n", loggerID)
	i, n := 0, len(counts)
	for id, count := range counts {
		i++
		comma := ","
		if i == n {
			comma = ""
		}
		fmt.Fprintf(f, "    %q: %d%s\n", id.String(), count, comma)
	}
	fmt.Fprint(f, "  }\n}\n")
	return nil
}
