package interpreter

import (
	"strings"

	"github.com/doeshing/termsim/internal/domain"
)

type handlerFunc func(in *Interpreter, args []string) (domain.Result, error)

// dispatchTable is built once and never mutated. Handlers must not refer
// back to it.
var dispatchTable = map[string]handlerFunc{
	"ls":      (*Interpreter).ls,
	"cd":      (*Interpreter).cd,
	"pwd":     (*Interpreter).pwd,
	"mkdir":   (*Interpreter).mkdir,
	"rmdir":   (*Interpreter).rmdir,
	"rm":      (*Interpreter).rm,
	"touch":   (*Interpreter).touch,
	"cat":     (*Interpreter).cat,
	"echo":    (*Interpreter).echo,
	"mv":      (*Interpreter).mv,
	"cp":      (*Interpreter).cp,
	"ps":      (*Interpreter).ps,
	"cpu":     (*Interpreter).cpu,
	"mem":     (*Interpreter).mem,
	"sysinfo": (*Interpreter).sysinfo,
	"history": (*Interpreter).showHistory,
	"help":    (*Interpreter).help,
	"clear":   (*Interpreter).clear,
	"exit":    (*Interpreter).exit,
}

// tokenize splits line on runs of whitespace. The first token, lowercased,
// is the verb; argument casing is preserved.
func tokenize(line string) (verb string, args []string, ok bool) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", nil, false
	}
	return strings.ToLower(fields[0]), fields[1:], true
}

// Verb extracts the lowercased verb of line, or "" for blank input.
func Verb(line string) string {
	verb, _, _ := tokenize(line)
	return verb
}

// Known reports whether verb has a handler.
func Known(verb string) bool {
	_, ok := dispatchTable[verb]
	return ok
}
