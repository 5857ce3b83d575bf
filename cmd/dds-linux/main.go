//go:build linux

// Command dds-linux drives an AD983x wired to a Linux SPI port.
//
// Commands come from the arguments, one per argument, or from stdin:
//
//	dds-linux -cs GPIO25 reset "freq-hz f0 440" enable
//	echo "wave triangle" | dds-linux
package main

import (
	"flag"
	"log"
	"os"
	"strings"

	"ddscode-go/drivers/ad983x"
	"ddscode-go/services/ddsctl"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"
	"tinygo.org/x/drivers"
)

var _ drivers.SPI = periphSPI{}

// periphSPI adapts a periph SPI connection to tinygo drivers.SPI.
type periphSPI struct{ c spi.Conn }

func (p periphSPI) Tx(w, r []byte) error { return p.c.Tx(w, r) }

func (p periphSPI) Transfer(b byte) (byte, error) {
	var r [1]byte
	err := p.c.Tx([]byte{b}, r[:])
	return r[0], err
}

// periphPin drives FSYNC through a periph GPIO.
type periphPin struct{ p gpio.PinOut }

func (p periphPin) Set(high bool) {
	if err := p.p.Out(gpio.Level(high)); err != nil {
		log.Printf("fsync %s: %v", p.p, err)
	}
}

func main() {
	log.SetPrefix("dds-linux: ")
	log.SetFlags(0)

	var (
		port = flag.String("spi", "", "SPI port name (default: first port)")
		cs   = flag.String("cs", "", "GPIO used as FSYNC; empty uses the port's own chip select")
		chip = flag.String("chip", "ad9833", "chip: ad9833, ad9837, ad9834 or ad9838")
		hz   = flag.Int64("hz", 5_000_000, "SPI clock in Hz")
		mclk = flag.Uint64("mclk", ad983x.DefaultMCLK, "DDS reference clock in Hz")
	)
	flag.Parse()

	variant, ok := map[string]ad983x.Variant{
		"ad9833": ad983x.VariantAD9833,
		"ad9837": ad983x.VariantAD9837,
		"ad9834": ad983x.VariantAD9834,
		"ad9838": ad983x.VariantAD9838,
	}[strings.ToLower(*chip)]
	if !ok {
		log.Fatalf("unknown chip %q", *chip)
	}

	if _, err := host.Init(); err != nil {
		log.Fatalf("could not initialise host drivers: %+v", err)
	}

	p, err := spireg.Open(*port)
	if err != nil {
		log.Fatalf("could not open SPI port %q: %+v", *port, err)
	}
	defer p.Close()

	mode := spi.Mode2
	cfg := ad983x.Config{Variant: variant}
	if *cs != "" {
		pin := gpioreg.ByName(*cs)
		if pin == nil {
			log.Fatalf("unknown GPIO %q", *cs)
		}
		if err := pin.Out(gpio.High); err != nil {
			log.Fatalf("could not configure FSYNC %q: %+v", *cs, err)
		}
		cfg.CS = periphPin{p: pin}
		mode |= spi.NoCS
	}

	c, err := p.Connect(physic.Frequency(*hz)*physic.Hertz, mode, 8)
	if err != nil {
		log.Fatalf("could not connect to SPI port: %+v", err)
	}

	dev, err := ad983x.New(periphSPI{c: c}, cfg)
	if err != nil {
		log.Fatalf("could not create %s driver: %+v", *chip, err)
	}
	defer dev.Destroy()

	con := ddsctl.New(dev, ddsctl.Config{MCLK: *mclk})
	if flag.NArg() == 0 {
		if err := con.Run(os.Stdin, os.Stdout); err != nil {
			log.Fatalf("console: %+v", err)
		}
		return
	}
	for _, line := range flag.Args() {
		r := con.Exec(line)
		log.Printf("%s: %s", line, r)
	}
}
