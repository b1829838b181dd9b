// Package siteconfig loads the site settings the join form reads
// (join_form_fields, validate_email) from a YAML file and keeps them
// current while the file changes.
package siteconfig

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/nfrund/joinform/internal/domain"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// Default is used when no settings file exists, and fills the keys a file
// leaves out. Email validation is mandatory unless a site turns it off.
var Default = domain.SiteConfig{
	JoinFormFields: []string{"username", "fullname", "email", "password", "mail_me"},
	ValidateEmail:  true,
}

// Store serves the current site settings.
type Store struct {
	fs      afero.Fs
	path    string
	current atomic.Pointer[domain.SiteConfig]

	mu        sync.Mutex
	listeners []func(domain.SiteConfig)
}

var _ domain.SiteConfigProvider = (*Store)(nil)

// New creates a Store reading path from fsys. Call Load before Current.
func New(fsys afero.Fs, path string) *Store {
	s := &Store{fs: fsys, path: path}
	def := clone(Default)
	s.current.Store(&def)
	return s
}

// Load reads the settings file. A missing file keeps the defaults.
func (s *Store) Load() error {
	cfg, err := s.read()
	if err != nil {
		return err
	}
	s.current.Store(&cfg)
	s.notify(cfg)
	return nil
}

// Current returns a copy of the active settings.
func (s *Store) Current() domain.SiteConfig {
	return clone(*s.current.Load())
}

// OnChange registers fn to be called after each successful reload.
func (s *Store) OnChange(fn func(domain.SiteConfig)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// Watch reloads the settings whenever the file changes until ctx is done.
// It only works on the OS filesystem and returns immediately otherwise.
func (s *Store) Watch(ctx context.Context) error {
	if _, ok := s.fs.(*afero.OsFs); !ok {
		slog.Debug("Site config is not on the OS filesystem, skipping watcher setup")
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file system watcher: %w", err)
	}
	// Watch the directory so editors that replace the file are noticed.
	dir := filepath.Dir(s.path)
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	slog.Debug("Started site config watcher", "path", s.path)
	go s.watch(ctx, watcher)
	return nil
}

func (s *Store) watch(ctx context.Context, watcher *fsnotify.Watcher) {
	defer func() {
		watcher.Close()
		slog.Info("Site config watcher stopped")
	}()

	target := filepath.Clean(s.path)
	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if err := s.Load(); err != nil {
				slog.Error("Failed to reload site config, keeping previous settings", "path", s.path, "error", err)
				continue
			}
			slog.Info("Site config reloaded", "path", s.path)

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			slog.Error("Site config watcher error", "error", err)
		}
	}
}

func (s *Store) read() (domain.SiteConfig, error) {
	data, err := afero.ReadFile(s.fs, s.path)
	if errors.Is(err, fs.ErrNotExist) {
		slog.Info("Site config not found, using defaults", "path", s.path)
		return clone(Default), nil
	}
	if err != nil {
		return domain.SiteConfig{}, fmt.Errorf("read site config: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML settings over Default, so omitted keys and an empty
// document keep their defaults. Field ids are trimmed and blanks dropped.
func Parse(data []byte) (domain.SiteConfig, error) {
	cfg := clone(Default)
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return domain.SiteConfig{}, fmt.Errorf("parse site config: %w", err)
	}
	fields := make([]string, 0, len(cfg.JoinFormFields))
	for _, f := range cfg.JoinFormFields {
		if f = strings.TrimSpace(f); f != "" {
			fields = append(fields, f)
		}
	}
	cfg.JoinFormFields = fields
	return cfg, nil
}

func (s *Store) notify(cfg domain.SiteConfig) {
	s.mu.Lock()
	listeners := append([]func(domain.SiteConfig){}, s.listeners...)
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(clone(cfg))
	}
}

func clone(cfg domain.SiteConfig) domain.SiteConfig {
	cfg.JoinFormFields = append([]string(nil), cfg.JoinFormFields...)
	return cfg
}
