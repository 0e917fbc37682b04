package errsystem

import (
	"encoding/json"
	"fmt"
	"os"
	"os/user"
	"runtime"
	"runtime/debug"
	"strings"
	"time"

	"github.com/agentuity/go-common/tui"
	"github.com/mattn/go-isatty"
)

var Version string = "dev"

type crashReport struct {
	ID         string         `json:"id"`
	Timestamp  string         `json:"timestamp"`
	Error      string         `json:"error"`
	ErrorType  ErrorType      `json:"error_type"`
	Username   string         `json:"username"`
	Message    string         `json:"message,omitempty"`
	OSName     string         `json:"os_name"`
	OSArch     string         `json:"os_arch"`
	CLIVersion string         `json:"cli_version"`
	Attributes map[string]any `json:"attributes,omitempty"`
	StackTrace string         `json:"stack_trace,omitempty"`
}

func (e *errSystem) writeCrashReportFile(stackTrace string) string {
	tmp, err := os.Create(fmt.Sprintf(".freshext-crash-%d.json", time.Now().Unix()))
	if err != nil {
		return ""
	}
	defer tmp.Close()
	var report crashReport
	report.ID = e.id
	report.Timestamp = time.Now().Format(time.RFC3339)
	if user, err := user.Current(); err == nil {
		report.Username = user.Username
	}
	report.OSName = runtime.GOOS
	report.OSArch = runtime.GOARCH
	report.Message = e.message
	if e.err != nil {
		report.Error = e.err.Error()
	}
	report.ErrorType = e.code
	report.Attributes = e.attributes
	report.CLIVersion = Version
	report.StackTrace = stackTrace
	json.NewEncoder(tmp).Encode(report)
	return tmp.Name()
}

// ShowErrorAndExit shows an error message and exits the program.
// If the program is running in a terminal, it also writes a crash report
// file next to the working directory so the details can be attached to a
// bug report.
func (e *errSystem) ShowErrorAndExit() {
	tui.CancelSpinner() // cancel in case we get an error inside a spinner action
	var body strings.Builder
	if e.message != "" {
		body.WriteString(e.message + "\n\n")
	} else {
		body.WriteString(e.code.Message + "\n\n")
	}
	var detail []string
	if e.err != nil {
		errmsg := e.err.Error()
		errmsg = strings.ReplaceAll(errmsg, "\n", ". ")
		detail = append(detail, tui.PadRight("Error:", 10, " ")+tui.MaxWidth(errmsg, 65))
	}
	detail = append(detail, tui.PadRight("Code:", 10, " ")+e.code.Code)
	detail = append(detail, tui.PadRight("ID:", 10, " ")+e.id)
	for _, d := range detail {
		body.WriteString(tui.Muted(d) + "\n")
	}
	tui.ShowBanner(tui.Warning("☹ Error Detected"), body.String(), false)
	if isatty.IsTerminal(os.Stdout.Fd()) {
		if fn := e.writeCrashReportFile(string(debug.Stack())); fn != "" {
			fmt.Println(tui.Muted("A crash report was written to " + fn))
		}
	}
	os.Exit(1)
}
