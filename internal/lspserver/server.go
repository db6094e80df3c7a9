// Package lspserver implements a Language Server Protocol server for
// nulint over stdio: push diagnostics on open/change, markdown hover
// for the violations under the cursor.
//
// Transport: stdio, Content-Length framed JSON-RPC 2.0.
// Protocol: LSP 3.17.
package lspserver

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/nulint/nulint/internal/config"
	"github.com/nulint/nulint/internal/engine"
	"github.com/nulint/nulint/internal/hover"
	"github.com/nulint/nulint/internal/lintctx"
	"github.com/nulint/nulint/internal/nulog"
	"github.com/nulint/nulint/internal/registry"
	"github.com/nulint/nulint/internal/rulecat/consistentindentation"
	"github.com/nulint/nulint/internal/span"
	"github.com/nulint/nulint/internal/version"
	"github.com/nulint/nulint/internal/violation"

	// Register the full rule catalogue.
	_ "github.com/nulint/nulint/internal/rulecat/all"
)

const serverName = "nulint"

// Server implements the language server.
type Server struct {
	documents *DocumentStore

	// Latest lint result per URI, consumed by hover.
	lintMu      sync.RWMutex
	lintResults map[string][]violation.Violation

	reader  *bufio.Reader
	writer  io.Writer
	writeMu sync.Mutex

	log     *logrus.Logger
	logTail *nulog.TailBuffer

	shutdown   bool
	shutdownMu sync.RWMutex
}

// New creates a server reading requests from r and writing responses
// to w. A nil logger falls back to the default stderr logger.
func New(r io.Reader, w io.Writer, log *logrus.Logger) *Server {
	if log == nil {
		log = nulog.Default()
	}
	return &Server{
		documents:   NewDocumentStore(),
		lintResults: make(map[string][]violation.Violation),
		reader:      bufio.NewReader(r),
		writer:      w,
		log:         log,
		logTail:     nulog.WithTail(log, nulog.DefaultTailLimit),
	}
}

// Run processes JSON-RPC messages until the client disconnects or
// sends exit.
func (s *Server) Run() error {
	s.log.Info("nulint LSP server starting")

	for {
		s.shutdownMu.RLock()
		done := s.shutdown
		s.shutdownMu.RUnlock()
		if done {
			return nil
		}

		msg, err := s.readMessage()
		if err != nil {
			if errors.Is(err, io.EOF) {
				s.log.Info("client disconnected")
				return nil
			}
			s.log.WithError(err).Error("read message")
			continue
		}
		if err := s.handleMessage(msg); err != nil {
			s.log.WithError(err).WithField("method", msg.Method).Error("handle message")
		}
	}
}

// jsonrpcMessage represents a JSON-RPC 2.0 message.
type jsonrpcMessage struct {
	JSONRPC string           `json:"jsonrpc"`
	ID      *json.RawMessage `json:"id,omitempty"`
	Method  string           `json:"method,omitempty"`
	Params  json.RawMessage  `json:"params,omitempty"`
	Result  json.RawMessage  `json:"result,omitempty"`
	Error   *jsonrpcError    `json:"error,omitempty"`
}

type jsonrpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// JSON-RPC error codes used by the server.
const (
	codeInvalidParams  = -32602
	codeMethodNotFound = -32601
)

func (s *Server) readMessage() (*jsonrpcMessage, error) {
	var contentLength int
	for {
		line, err := s.reader.ReadString('\n')
		if err != nil {
			return nil, err
		}
		line = strings.TrimSpace(line)
		if line == "" {
			break
		}
		if value, ok := strings.CutPrefix(line, "Content-Length: "); ok {
			contentLength, err = strconv.Atoi(value)
			if err != nil {
				return nil, fmt.Errorf("invalid Content-Length: %w", err)
			}
		}
	}
	if contentLength == 0 {
		return nil, errors.New("missing Content-Length header")
	}

	body := make([]byte, contentLength)
	if _, err := io.ReadFull(s.reader, body); err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	var msg jsonrpcMessage
	if err := json.Unmarshal(body, &msg); err != nil {
		return nil, fmt.Errorf("parse message: %w", err)
	}
	return &msg, nil
}

func (s *Server) sendResponse(id *json.RawMessage, result any, rpcErr *jsonrpcError) {
	msg := jsonrpcMessage{JSONRPC: "2.0", ID: id}
	if rpcErr != nil {
		msg.Error = rpcErr
	} else {
		data, err := json.Marshal(result)
		if err != nil {
			s.log.WithError(err).Error("marshal result")
			return
		}
		msg.Result = data
	}
	s.writeMessage(&msg)
}

func (s *Server) sendNotification(method string, params any) {
	msg := jsonrpcMessage{JSONRPC: "2.0", Method: method}
	if params != nil {
		data, err := json.Marshal(params)
		if err != nil {
			s.log.WithError(err).Error("marshal notification")
			return
		}
		msg.Params = data
	}
	s.writeMessage(&msg)
}

func (s *Server) writeMessage(msg *jsonrpcMessage) {
	body, err := json.Marshal(msg)
	if err != nil {
		s.log.WithError(err).Error("marshal message")
		return
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	fmt.Fprintf(s.writer, "Content-Length: %d\r\n\r\n", len(body))
	_, _ = s.writer.Write(body)
}

func (s *Server) handleMessage(msg *jsonrpcMessage) error {
	switch msg.Method {
	case "initialize":
		return s.handleInitialize(msg)
	case "initialized":
		return nil
	case "shutdown":
		s.sendResponse(msg.ID, nil, nil)
		return nil
	case "exit":
		s.shutdownMu.Lock()
		s.shutdown = true
		s.shutdownMu.Unlock()
		return nil
	case "textDocument/didOpen":
		return s.handleDidOpen(msg)
	case "textDocument/didChange":
		return s.handleDidChange(msg)
	case "textDocument/didClose":
		return s.handleDidClose(msg)
	case "textDocument/didSave":
		return nil
	case "textDocument/hover":
		return s.handleHover(msg)
	default:
		if msg.ID != nil {
			s.sendResponse(msg.ID, nil, &jsonrpcError{
				Code:    codeMethodNotFound,
				Message: "method not found: " + msg.Method,
			})
		}
		return nil
	}
}

func (s *Server) handleInitialize(msg *jsonrpcMessage) error {
	var params InitializeParams
	if len(msg.Params) > 0 {
		if err := json.Unmarshal(msg.Params, &params); err != nil {
			s.sendResponse(msg.ID, nil, &jsonrpcError{Code: codeInvalidParams, Message: err.Error()})
			return err
		}
	}

	result := InitializeResult{
		Capabilities: ServerCapabilities{
			TextDocumentSync: &TextDocumentSyncOptions{
				OpenClose: true,
				Change:    TextDocumentSyncKindFull,
			},
			HoverProvider: true,
		},
		ServerInfo: ServerInfo{Name: serverName, Version: version.Version()},
	}
	s.sendResponse(msg.ID, result, nil)
	return nil
}

func (s *Server) handleDidOpen(msg *jsonrpcMessage) error {
	var params DidOpenTextDocumentParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return err
	}
	doc := s.documents.Open(params.TextDocument.URI, params.TextDocument.Version, params.TextDocument.Text)
	s.lintAndPublish(doc)
	return nil
}

func (s *Server) handleDidChange(msg *jsonrpcMessage) error {
	var params DidChangeTextDocumentParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return err
	}
	if len(params.ContentChanges) == 0 {
		return nil
	}
	// Full sync: the last change carries the complete content.
	text := params.ContentChanges[len(params.ContentChanges)-1].Text
	doc := s.documents.Update(params.TextDocument.URI, params.TextDocument.Version, text)
	s.lintAndPublish(doc)
	return nil
}

func (s *Server) handleDidClose(msg *jsonrpcMessage) error {
	var params DidCloseTextDocumentParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return err
	}
	s.documents.Close(params.TextDocument.URI)
	s.lintMu.Lock()
	delete(s.lintResults, params.TextDocument.URI)
	s.lintMu.Unlock()
	// Clear stale diagnostics for the closed buffer.
	s.sendNotification("textDocument/publishDiagnostics", PublishDiagnosticsParams{
		URI:         params.TextDocument.URI,
		Diagnostics: []Diagnostic{},
	})
	return nil
}

func (s *Server) handleHover(msg *jsonrpcMessage) error {
	var params HoverParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		s.sendResponse(msg.ID, nil, &jsonrpcError{Code: codeInvalidParams, Message: err.Error()})
		return err
	}
	doc := s.documents.Get(params.TextDocument.URI)
	if doc == nil {
		s.sendResponse(msg.ID, nil, nil)
		return nil
	}

	s.lintMu.RLock()
	vs := s.lintResults[doc.URI]
	s.lintMu.RUnlock()

	src := doc.Source()
	offset := offsetAt(doc.Text, params.Position.Line, params.Position.Character)
	h := hover.Build(src, hover.ViolationsAt(vs, offset))
	if h == nil {
		s.sendResponse(msg.ID, nil, nil)
		return nil
	}
	s.sendResponse(msg.ID, h, nil)
	return nil
}

// lintAndPublish runs a pass over the document and pushes the
// diagnostics.
func (s *Server) lintAndPublish(doc *Document) {
	src := doc.Source()
	cfg := configFor(doc.Name)
	sel, warnings := cfg.Selection()
	for _, w := range warnings {
		s.log.Warn(w.Message)
	}

	eng := engine.New(sel)
	eng.Logger = s.log
	eng.LogTail = s.logTail
	if cfg.EditorConfig != nil {
		reg := registry.DefaultRegistry().Clone()
		reg.Replace(consistentindentation.NewWithDefinition(cfg.EditorConfig))
		eng.Registry = reg
	}
	s.logTail.Reset()
	result := eng.Run(lintctx.New(src))
	for _, w := range result.ConfigWarnings {
		s.log.Warn(w.Message)
	}

	s.lintMu.Lock()
	s.lintResults[doc.URI] = result.Violations
	s.lintMu.Unlock()

	diags := make([]Diagnostic, 0, len(result.Violations))
	for _, v := range result.Violations {
		diags = append(diags, toDiagnostic(src, v))
	}
	s.sendNotification("textDocument/publishDiagnostics", PublishDiagnosticsParams{
		URI:         doc.URI,
		Diagnostics: diags,
	})
}

// configFor resolves the document's on-disk configuration. Unsaved
// buffers and config errors fall back to the defaults.
func configFor(name string) *config.Config {
	cfg, err := config.Load(name)
	if err != nil {
		return config.Default()
	}
	return cfg
}

func toDiagnostic(src span.Source, v violation.Violation) Diagnostic {
	msg := v.Message
	if v.Help != "" {
		msg += "\n" + v.Help
	}
	return Diagnostic{
		Range:    toRange(src, v.Span),
		Severity: toSeverity(v.Severity),
		Code:     v.RuleID,
		Source:   serverName,
		Message:  msg,
	}
}

func toSeverity(s violation.Severity) DiagnosticSeverity {
	switch s {
	case violation.SeverityError:
		return DiagnosticSeverityError
	case violation.SeverityInfo:
		return DiagnosticSeverityInformation
	default:
		return DiagnosticSeverityWarning
	}
}
