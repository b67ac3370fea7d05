package simulate

import (
	"fmt"
	"io"
	"math/big"
	"time"

	"github.com/NilFoundation/seatoken/internal/scenario"
	"github.com/fatih/color"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Printer renders scenario reports for a terminal.
type Printer struct {
	out     io.Writer
	numbers *message.Printer

	green  *color.Color
	red    *color.Color
	yellow *color.Color
	cyan   *color.Color
}

func NewPrinter(out io.Writer, noColor bool) *Printer {
	p := &Printer{
		out:     out,
		numbers: message.NewPrinter(language.English),
		green:   color.New(color.FgHiGreen),
		red:     color.New(color.FgHiRed),
		yellow:  color.New(color.FgHiYellow),
		cyan:    color.New(color.FgHiCyan, color.Bold),
	}
	if noColor {
		for _, c := range []*color.Color{p.green, p.red, p.yellow, p.cyan} {
			c.DisableColor()
		}
	}
	return p
}

func (p *Printer) println(parts ...string) {
	for _, part := range parts {
		_, _ = io.WriteString(p.out, part)
	}
	_, _ = io.WriteString(p.out, "\n")
}

// Ether formats a wei amount in ether.
func Ether(wei *big.Int) string {
	return decimal.NewFromBigInt(wei, -18).String() + " ether"
}

func (p *Printer) Header(price, purchase, cost *big.Int) {
	p.println(p.cyan.Sprint("SeaToken sale simulation"))
	p.println(p.numbers.Sprintf("Token price: %s, %d tokens cost %s", Ether(price), purchase.Int64(), Ether(cost)))
}

func (p *Printer) Report(r *scenario.Report) {
	status := p.green.Sprint("PASS")
	if r.Failed() {
		status = p.red.Sprint("FAIL")
	}
	p.println()
	p.println(status, " ", p.cyan.Sprint(r.Name), p.numbers.Sprintf(" (%d steps, %d gas, %s)",
		len(r.Steps), r.GasUsed(), r.Duration.Round(time.Millisecond)))

	for _, s := range r.Steps {
		switch {
		case s.Err != nil:
			p.println("  ", p.red.Sprint("✗ "), s.Description, ": ", p.red.Sprint(s.Err.Error()))
		case s.Rejected:
			p.println("  ", p.yellow.Sprint("✓ "), s.Description, p.yellow.Sprint(" (rejected)"))
		default:
			line := "  " + p.green.Sprint("✓ ") + s.Description
			if s.GasUsed > 0 {
				line += p.numbers.Sprintf(" [%d gas]", s.GasUsed)
			}
			p.println(line)
		}
	}
}

// Summary prints the totals and returns the number of failed scenarios.
func (p *Printer) Summary(reports []*scenario.Report) int {
	failed := 0
	for _, r := range reports {
		if r.Failed() {
			failed++
		}
	}
	p.println()
	summary := fmt.Sprintf("%d scenario(s), %d failed", len(reports), failed)
	if failed > 0 {
		p.println(p.red.Sprint(summary))
	} else {
		p.println(p.green.Sprint(summary))
	}
	return failed
}
