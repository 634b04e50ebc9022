// Package prof starts and stops the stdlib profilers behind one session.
package prof

import (
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"
	"runtime/trace"
)

// Options name the profile output paths; empty strings leave a profiler off.
type Options struct {
	CPUPath   string
	MemPath   string
	TracePath string
}

// Session owns every profiler enabled for one command run.
type Session struct {
	cpuFile   *os.File
	traceFile *os.File
	memPath   string
}

// Start enables the requested profilers. On error everything already
// started is stopped again before returning.
func Start(opts Options) (*Session, error) {
	s := &Session{memPath: opts.MemPath}
	if opts.CPUPath != "" {
		f, err := os.Create(opts.CPUPath)
		if err != nil {
			return nil, err
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("failed to start cpu profile: %w", err)
		}
		s.cpuFile = f
	}
	if opts.TracePath != "" {
		f, err := os.Create(opts.TracePath)
		if err != nil {
			s.stopCPU()
			return nil, err
		}
		if err := trace.Start(f); err != nil {
			_ = f.Close()
			s.stopCPU()
			return nil, fmt.Errorf("failed to start runtime trace: %w", err)
		}
		s.traceFile = f
	}
	return s, nil
}

func (s *Session) stopCPU() {
	if s.cpuFile == nil {
		return
	}
	pprof.StopCPUProfile()
	_ = s.cpuFile.Close()
	s.cpuFile = nil
}

func (s *Session) stopTrace() {
	if s.traceFile == nil {
		return
	}
	trace.Stop()
	_ = s.traceFile.Close()
	s.traceFile = nil
}

// Stop shuts profilers down in reverse start order, then writes the heap
// profile so it reflects the finished run. Safe to call more than once.
func (s *Session) Stop() error {
	if s == nil {
		return nil
	}
	s.stopTrace()
	s.stopCPU()
	if s.memPath == "" {
		return nil
	}
	path := s.memPath
	s.memPath = ""
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	runtime.GC()
	if err := pprof.WriteHeapProfile(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write heap profile: %w", err)
	}
	return f.Close()
}
