package main

import (
	"context"
	"testing"

	"github.com/DeadKai/go-content/cmd/corpus/internal/bootstrap"
	"github.com/DeadKai/go-content/internal/logging"
	"github.com/DeadKai/go-content/pkg/interfaces"
)

type stubCorpusService struct {
	loadDir string
}

func (s *stubCorpusService) Load(context.Context, string, interfaces.LoadOptions) (*interfaces.Document, error) {
	return nil, nil
}

func (s *stubCorpusService) LoadDirectory(_ context.Context, dir string, _ interfaces.LoadOptions) ([]*interfaces.Document, error) {
	s.loadDir = dir
	return []*interfaces.Document{{Slug: "post"}}, nil
}

func (s *stubCorpusService) Render(context.Context, []byte, interfaces.ParseOptions) ([]byte, error) {
	return nil, nil
}

func (s *stubCorpusService) RenderDocument(context.Context, *interfaces.Document, interfaces.ParseOptions) ([]byte, error) {
	return nil, nil
}

type stubIndexService struct {
	syncCalls int
	syncOpts  interfaces.SyncOptions
}

func (s *stubIndexService) Sync(_ context.Context, _ []*interfaces.Document, opts interfaces.SyncOptions) (*interfaces.SyncResult, error) {
	s.syncCalls++
	s.syncOpts = opts
	return &interfaces.SyncResult{}, nil
}

func TestRunIndexUsesCommandHandler(t *testing.T) {
	original := moduleBuilder
	defer func() { moduleBuilder = original }()

	corpus := &stubCorpusService{}
	index := &stubIndexService{}
	moduleBuilder = func(bootstrap.Options) (*bootstrap.Module, error) {
		return &bootstrap.Module{
			Corpus: corpus,
			Index:  index,
			Logger: logging.NoOp(),
		}, nil
	}

	if err := runIndex([]string{
		"-directory", "posts",
		"-dry-run",
	}); err != nil {
		t.Fatalf("runIndex returned error: %v", err)
	}
	if corpus.loadDir != "posts" {
		t.Fatalf("expected load directory posts, got %s", corpus.loadDir)
	}
	if index.syncCalls != 1 {
		t.Fatalf("expected sync to be called once, got %d", index.syncCalls)
	}
	if !index.syncOpts.DryRun {
		t.Fatalf("expected dry-run sync options, got %+v", index.syncOpts)
	}
}

func TestRunIndexRequiresIndexService(t *testing.T) {
	original := moduleBuilder
	defer func() { moduleBuilder = original }()

	moduleBuilder = func(bootstrap.Options) (*bootstrap.Module, error) {
		return &bootstrap.Module{
			Corpus: &stubCorpusService{},
			Logger: logging.NoOp(),
		}, nil
	}

	if err := runIndex(nil); err == nil {
		t.Fatalf("expected error when index service is missing")
	}
}
