package main

import (
	"bufio"
	"net"
	"net/http"
)

var noCacheHeaders = [...][2]string{
	{"Cache-Control", "no-cache, no-store, must-revalidate"},
	{"Pragma", "no-cache"},
	{"Expires", "0"},
}

// noCache stamps the no-cache headers onto every response right before the
// status line goes out. Setting them up front is not enough: the file
// server drops Cache-Control when it answers with an error.
func noCache(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		nw := &noCacheWriter{ResponseWriter: w}
		next.ServeHTTP(nw, r)
		// net/http would send an implicit 200 without our headers.
		if !nw.wroteHeader && !nw.hijacked {
			nw.WriteHeader(http.StatusOK)
		}
	})
}

type noCacheWriter struct {
	http.ResponseWriter
	wroteHeader bool
	hijacked    bool
}

func (w *noCacheWriter) WriteHeader(code int) {
	if !w.wroteHeader {
		h := w.ResponseWriter.Header()
		for _, kv := range noCacheHeaders {
			h.Set(kv[0], kv[1])
		}
		w.wroteHeader = true
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *noCacheWriter) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	return w.ResponseWriter.Write(b)
}

func (w *noCacheWriter) FlushError() error {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	return http.NewResponseController(w.ResponseWriter).Flush()
}

func (w *noCacheWriter) Flush() {
	w.FlushError()
}

func (w *noCacheWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	conn, rw, err := http.NewResponseController(w.ResponseWriter).Hijack()
	if err == nil {
		w.hijacked = true
	}
	return conn, rw, err
}

func (w *noCacheWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
