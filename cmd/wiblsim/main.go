// Command wiblsim runs the deterministic logger simulator and writes a
// WIBL binary file (spec §6.5).
package main

import (
	"flag"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/wibl-org/wibl-go"
	"github.com/wibl-org/wibl-go/sim"
)

func main() {
	filename := flag.String("f", "", "output WIBL filename (required)")
	duration := flag.Int("d", 0, "simulated duration in seconds (required)")
	emitSerial := flag.Bool("s", false, "emit NMEA-0183 sentences")
	emitBinary := flag.Bool("b", false, "emit NMEA-2000 binary frames")
	seed := flag.Int64("seed", 1, "PRNG seed")
	flag.Parse()

	if *filename == "" || *duration <= 0 {
		log.Println("# -f and -d are both required")
		os.Exit(1)
	}

	out, err := os.Create(*filename)
	if err != nil {
		log.Fatal(err)
	}
	defer out.Close()

	w := wibl.NewWriter(out, wibl.DefaultVersionInfo, wibl.Metadata{
		Name: "wiblsim",
		ID:   uuid.NewString(),
	})

	mode := sim.Mode{Binary: *emitBinary, Serial: *emitSerial}
	engine := sim.NewEngine(*seed, time.Now().UTC(), 47.6, -122.3, 20, mode)

	if err := engine.Run(w, *duration); err != nil {
		log.Fatal(err)
	}
}
