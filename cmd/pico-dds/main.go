//go:build rp2040

// Command pico-dds exposes an AD983x on SPI0 through a text console on UART0.
package main

import (
	"context"
	"machine"
	"time"

	"ddscode-go/drivers/ad983x"
	"ddscode-go/services/ddsctl"

	uartx "github.com/jangala-dev/tinygo-uartx/uartx"
)

// ---------- Configuration ----------

const (
	spiHz    = 4_000_000
	baudRate = 115200

	pinSCK   = machine.GP18
	pinSDO   = machine.GP19
	pinSDI   = machine.GP16
	pinFSYNC = machine.GP17
)

// uartReader turns uartx's receive call into an io.Reader.
type uartReader struct {
	ctx context.Context
	u   *uartx.UART
}

func (r uartReader) Read(p []byte) (int, error) { return r.u.RecvSomeContext(r.ctx, p) }

func main() {
	// Allow USB CDC to enumerate before we print.
	time.Sleep(1500 * time.Millisecond)
	println("[dds] boot …")

	spi := machine.SPI0
	if err := spi.Configure(machine.SPIConfig{
		Frequency: spiHz,
		SCK:       pinSCK,
		SDO:       pinSDO,
		SDI:       pinSDI,
		Mode:      2, // CPOL=1, CPHA=0
	}); err != nil {
		println("[dds] FAIL: spi configure:", err.Error())
		return
	}
	pinFSYNC.Configure(machine.PinConfig{Mode: machine.PinOutput})
	pinFSYNC.High()

	dds := ad983x.NewAD9833(spi, pinFSYNC)

	// Power-up sequence: 440 Hz sine on F0.
	if err := dds.Reset(); err != nil {
		println("[dds] FAIL: reset:", err.Error())
		return
	}
	word, _ := ad983x.FrequencyWord(440, ad983x.DefaultMCLK)
	if err := dds.SetFrequency(ad983x.F0, word); err != nil {
		println("[dds] FAIL: frequency:", err.Error())
		return
	}
	if err := dds.Enable(); err != nil {
		println("[dds] FAIL: enable:", err.Error())
		return
	}
	println("[dds] 440 Hz on F0")

	u := uartx.UART0
	_ = u.Configure(uartx.UARTConfig{
		BaudRate: baudRate,
		TX:       machine.UART0_TX_PIN,
		RX:       machine.UART0_RX_PIN,
	})

	con := ddsctl.New(dds, ddsctl.Config{})
	for {
		if err := con.Run(uartReader{ctx: context.Background(), u: u}, u); err != nil {
			println("[dds] console:", err.Error())
		}
		time.Sleep(100 * time.Millisecond)
	}
}
