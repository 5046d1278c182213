package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/docopt/docopt-go"
	"github.com/mattn/go-isatty"
	"github.com/peterh/liner"

	latte "github.com/AustenPrinciple/latte-kernel"
)

const (
	appName     = "latte"
	historyFile = ".latte_history"
	promptMain  = "==> "
)

const usage = `latte - normalization REPL for the latte proof kernel.

Usage:
  latte [--no-color] [FILE]
  latte -h | --help

Arguments:
  FILE  Read declarations and terms from FILE instead of starting a REPL.

Options:
  --no-color  Disable ANSI colors.
  -h --help   Show this help.
`

const helpText = `
Declarations:
  def      name (x : T) ... = term
  opaque   name (x : T) ... = term
  axiom    name (x : T) ...
  theorem  name (x : T) ... = proof
  implicit name arity

Anything else is read as a term and normalized; "t == u" tests
definitional equality.

Commands:
  :env                     List session globals
  :unfold-theorems on|off  Toggle proof unfolding
  :help                    This text
  :quit                    Exit
`

var useColor = true

func red(s string) string {
	if !useColor {
		return s
	}
	return "\x1b[31m" + s + "\x1b[0m"
}

func green(s string) string {
	if !useColor {
		return s
	}
	return "\x1b[32m" + s + "\x1b[0m"
}

// session holds the mutable REPL state: the definition store and the
// normalization policy. The engine is rebuilt on policy changes; it is
// cheap, the store is shared.
type session struct {
	defs   *latte.DefEnv
	unfold bool
}

func newSession() *session {
	return &session{defs: latte.NewDefEnv()}
}

func (s *session) engine() *latte.Norm {
	return latte.New(s.defs, latte.WithUnfoldTheorems(s.unfold))
}

// handle processes one input line and returns the text to print.
func (s *session) handle(line string) (string, error) {
	if latte.IsDecl(line) {
		decl, err := latte.ReadDecl(line)
		if err != nil {
			return "", err
		}
		if err := decl.AddTo(s.defs); err != nil {
			return "", err
		}
		return decl.Name + " declared", nil
	}

	if l, r, found := strings.Cut(line, "=="); found {
		lt, err := s.readTerm(l)
		if err != nil {
			return "", err
		}
		rt, err := s.readTerm(r)
		if err != nil {
			return "", err
		}
		eq, err := s.engine().Equiv(lt, rt)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%v", eq), nil
	}

	t, err := s.readTerm(line)
	if err != nil {
		return "", err
	}
	nf, err := s.engine().Normalize(t)
	if err != nil {
		return "", err
	}
	return nf.String(), nil
}

func (s *session) readTerm(src string) (latte.Term, error) {
	t, err := latte.ReadTerm(strings.TrimSpace(src))
	if err != nil {
		return latte.Term{}, err
	}
	return s.defs.Resolve(t), nil
}

func (s *session) command(line string) (done bool) {
	cmd, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
	switch cmd {
	case ":quit", ":q":
		return true
	case ":help":
		fmt.Print(helpText)
	case ":env":
		for _, name := range s.defs.Names() {
			e, _ := s.defs.Fetch(name)
			tag := e.Kind.String()
			if e.Opaque {
				tag = "opaque " + tag
			}
			fmt.Printf("  %-20s %s/%d\n", name, tag, e.Arity)
		}
	case ":unfold-theorems":
		switch strings.TrimSpace(arg) {
		case "on":
			s.unfold = true
		case "off":
			s.unfold = false
		default:
			fmt.Println(red("usage: :unfold-theorems on|off"))
		}
	default:
		fmt.Println(red("unknown command " + cmd + " (:help for help)"))
	}
	return false
}

func repl(s *session) {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	histPath := ""
	if home, err := os.UserHomeDir(); err == nil {
		histPath = filepath.Join(home, historyFile)
		if f, err := os.Open(histPath); err == nil {
			line.ReadHistory(f)
			f.Close()
		}
	}

	fmt.Println("latte kernel REPL. Ctrl+D or :quit to exit, :help for help.")
	for {
		input, err := line.Prompt(promptMain)
		if err == liner.ErrPromptAborted {
			continue
		}
		if err == io.EOF {
			fmt.Println()
			break
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, red(err.Error()))
			break
		}
		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		line.AppendHistory(input)
		if strings.HasPrefix(input, ":") {
			if s.command(input) {
				break
			}
			continue
		}
		out, err := s.handle(input)
		if err != nil {
			fmt.Println(red(err.Error()))
			continue
		}
		fmt.Println(green(out))
	}

	if histPath != "" {
		if f, err := os.Create(histPath); err == nil {
			line.WriteHistory(f)
			f.Close()
		}
	}
}

// batch reads declarations and terms line by line, printing one normal
// form per term line. Any error aborts with a non-zero exit.
func batch(s *session, r io.Reader) error {
	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		input := strings.TrimSpace(sc.Text())
		if input == "" || strings.HasPrefix(input, ";") {
			continue
		}
		out, err := s.handle(input)
		if err != nil {
			return fmt.Errorf("line %d: %w", lineNo, err)
		}
		fmt.Println(out)
	}
	return sc.Err()
}

func main() {
	opts, err := docopt.ParseDoc(usage)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if noColor, _ := opts.Bool("--no-color"); noColor {
		useColor = false
	}

	s := newSession()

	if file, _ := opts.String("FILE"); file != "" {
		f, err := os.Open(file)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		defer f.Close()
		useColor = false
		if err := batch(s, f); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	if !isatty.IsTerminal(os.Stdin.Fd()) {
		useColor = false
		if err := batch(s, os.Stdin); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	repl(s)
}
