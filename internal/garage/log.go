package garage

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

// stdout receives the mail of EmailLogs that a Car creates for itself.
var stdout io.Writer = os.Stdout

// AdminEmail is the recipient of every EmailLog message.
const AdminEmail = "admin@garage.local"

// Log writes operational messages.
type Log interface {
	Write(message string)
}

// Report publishes messages to an audience.
type Report interface {
	Report(message string)
}

// ConsoleLog prints to a terminal. It is both a Log and a Report.
type ConsoleLog struct {
	out    io.Writer
	paint  *color.Color
	banner *color.Color
}

// NewConsoleLog creates a ConsoleLog printing to out.
func NewConsoleLog(out io.Writer) *ConsoleLog {
	return &ConsoleLog{
		out:    out,
		paint:  color.New(color.FgCyan),
		banner: color.New(color.FgCyan, color.Bold),
	}
}

// Write implements Log.
func (l *ConsoleLog) Write(message string) {
	l.paint.Fprintln(l.out, message)
}

// Report implements Report.
func (l *ConsoleLog) Report(message string) {
	l.banner.Fprintln(l.out, message)
}

// EmailLog mails every message to AdminEmail.
type EmailLog struct {
	out io.Writer
}

// NewEmailLog creates an EmailLog delivering to out.
func NewEmailLog(out io.Writer) *EmailLog {
	return &EmailLog{out: out}
}

// Write implements Log.
func (l *EmailLog) Write(message string) {
	fmt.Fprintf(l.out, "Email sent to %s : %s\n", AdminEmail, message)
}
