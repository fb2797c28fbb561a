package main

import (
	"context"
	"fmt"
	"os"

	"github.com/weaseltree/weaseltree/internal/config"
	"github.com/weaseltree/weaseltree/internal/doctor"
	"github.com/weaseltree/weaseltree/internal/git"
	"github.com/weaseltree/weaseltree/internal/log"
	"github.com/weaseltree/weaseltree/internal/mapping"
	"github.com/weaseltree/weaseltree/internal/resolve"
	"github.com/weaseltree/weaseltree/internal/wsl"
)

// app bundles what every command needs: config, the two git clients and
// the locations of the WSL home and the mapping file.
type app struct {
	cfg         *config.Config
	workDir     string
	wslHome     string
	mappingPath string
	git         *git.Client // WSL-side git
	winGit      *git.Client // Windows-side git (git.exe)
}

func newApp(ctx context.Context) (*app, error) {
	cfg := config.FromContext(ctx)

	workDir := config.WorkDirFromContext(ctx)
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		workDir = wd
	}

	home, err := wsl.WSLHome(cfg)
	if err != nil {
		return nil, fmt.Errorf("determine WSL home: %w", err)
	}

	mappingPath, err := wsl.MappingFile(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("locate mapping file: %w", err)
	}

	log.FromContext(ctx).Debug("environment", "wsl_home", home, "mapping_file", mappingPath, "cwd", workDir)

	return &app{
		cfg:         cfg,
		workDir:     workDir,
		wslHome:     home,
		mappingPath: mappingPath,
		git:         git.New("git"),
		winGit:      git.New(cfg.WindowsGit),
	}, nil
}

func (a *app) resolveEnv() resolve.Env {
	return resolve.Env{WSLHome: a.wslHome, Git: a.git}
}

func (a *app) doctorEnv() doctor.Env {
	return doctor.Env{WSLHome: a.wslHome, WindowsGit: a.winGit}
}

// openStore loads the mapping file under its lock.
func (a *app) openStore(ctx context.Context) (*mapping.Store, func(), error) {
	return mapping.Open(ctx, a.mappingPath)
}

// locate resolves the working directory under the mapping lock and saves
// any repairs. The caller must call unlock.
func (a *app) locate(ctx context.Context) (*resolve.Location, *mapping.Store, func(), error) {
	store, unlock, err := a.openStore(ctx)
	if err != nil {
		return nil, nil, nil, err
	}

	loc, err := resolve.Resolve(ctx, a.resolveEnv(), store, a.workDir)
	if err != nil {
		unlock()
		return nil, nil, nil, err
	}

	if loc.Changed() {
		l := log.FromContext(ctx)
		for _, r := range loc.Repairs {
			l.Printf("Repaired mapping: %s\n", r)
		}
		if err := store.Save(); err != nil {
			unlock()
			return nil, nil, nil, err
		}
	}
	return loc, store, unlock, nil
}

// resolveOnly is locate for commands that do not touch the store again.
func (a *app) resolveOnly(ctx context.Context) (*resolve.Location, error) {
	loc, _, unlock, err := a.locate(ctx)
	if err != nil {
		return nil, err
	}
	unlock()
	return loc, nil
}

func (a *app) remote(flag string) string {
	if flag != "" {
		return flag
	}
	return a.cfg.Remote
}

func dirExists(p string) bool {
	if p == "" {
		return false
	}
	info, err := os.Stat(p)
	return err == nil && info.IsDir()
}
