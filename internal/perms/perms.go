package perms

import (
	"fmt"
	"os"
	"os/exec"
	"os/user"
	"slices"

	"github.com/agentuity/go-common/logger"
)

// WebServerAccounts are the account names a web server process commonly runs
// as, in the priority order ownership changes are attempted.
var WebServerAccounts = []string{"www-data", "httpd", "www", "apache"}

type OutcomeKind int

const (
	// OutcomeAlreadyServable means the process already runs as a web server
	// account so the installed files are owned correctly.
	OutcomeAlreadyServable OutcomeKind = iota
	// OutcomeChanged means ownership of the path was changed to Account.
	OutcomeChanged
	// OutcomeManual means nothing could be done and the operator has to fix
	// ownership themselves.
	OutcomeManual
)

type Outcome struct {
	Kind    OutcomeKind
	Account string
	Reason  string
}

// Identity answers who the current process runs as.
type Identity interface {
	Username() string
	IsRoot() bool
}

// Escalator runs a command with elevated rights without prompting. Available
// reports whether that is possible at all.
type Escalator interface {
	Available() bool
	Run(name string, args ...string) error
}

// Reconciler decides whether and how to change ownership of installed files
// so the web server can serve them. Every outcome is advisory: a failed
// reconciliation never invalidates an install.
type Reconciler struct {
	logger logger.Logger
	id     Identity
	esc    Escalator
}

func New(logger logger.Logger) *Reconciler {
	return &Reconciler{logger: logger, id: processIdentity{}, esc: sudoEscalator{}}
}

// NewWithCapabilities wires explicit identity and escalation implementations,
// used by tests.
func NewWithCapabilities(logger logger.Logger, id Identity, esc Escalator) *Reconciler {
	return &Reconciler{logger: logger, id: id, esc: esc}
}

func (r *Reconciler) Reconcile(path string) Outcome {
	username := r.id.Username()
	r.logger.Debug("running as %s", username)
	if slices.Contains(WebServerAccounts, username) {
		return Outcome{Kind: OutcomeAlreadyServable, Account: username}
	}
	root := r.id.IsRoot()
	if !root && !r.esc.Available() {
		return Outcome{
			Kind:   OutcomeManual,
			Reason: "re-run as the web server user or with sudo, or change the ownership manually",
		}
	}
	for _, account := range WebServerAccounts {
		r.logger.Debug("trying to change ownership of %s to %s", path, account)
		if err := r.chown(path, account, root); err != nil {
			r.logger.Debug("chown to %s failed: %s", account, err)
			continue
		}
		return Outcome{Kind: OutcomeChanged, Account: account}
	}
	return Outcome{
		Kind:   OutcomeManual,
		Reason: fmt.Sprintf("no web server account would take ownership of %s", path),
	}
}

func (r *Reconciler) chown(path, account string, root bool) error {
	args := []string{"-R", account + ":" + account, path}
	if root {
		cmd := exec.Command("chown", args...)
		cmd.Stdout = nil
		cmd.Stderr = nil
		return cmd.Run()
	}
	return r.esc.Run("chown", args...)
}

type processIdentity struct{}

func (processIdentity) Username() string {
	if u, err := user.Current(); err == nil {
		return u.Username
	}
	return ""
}

func (processIdentity) IsRoot() bool {
	return os.Geteuid() == 0
}

type sudoEscalator struct{}

// Available probes for passwordless sudo; -n fails instead of prompting.
func (sudoEscalator) Available() bool {
	return exec.Command("sudo", "-n", "true").Run() == nil
}

func (sudoEscalator) Run(name string, args ...string) error {
	return exec.Command("sudo", append([]string{"-n", name}, args...)...).Run()
}
