package main

import (
	"github.com/vertti/ragcheck/pkg/config"
	"github.com/vertti/ragcheck/pkg/credcheck"
	"github.com/vertti/ragcheck/pkg/dbcheck"
	"github.com/vertti/ragcheck/pkg/embedcheck"
	"github.com/vertti/ragcheck/pkg/importcheck"
	"github.com/vertti/ragcheck/pkg/r2r"
	"github.com/vertti/ragcheck/pkg/supabasecheck"
	"github.com/vertti/ragcheck/pkg/tcpcheck"
)

// deps holds every collaborator the suites reach. Tests swap newDeps for
// one that returns fakes.
type deps struct {
	cfg       *config.Config
	runner    importcheck.Runner
	supabase  supabasecheck.Connector
	files     supabasecheck.FileWriter
	fs        credcheck.FileSystem
	http      r2r.HTTPClient
	dialer    tcpcheck.Dialer
	openDB    dbcheck.Opener
	embedders embedcheck.Factory
}

var newDeps = func(cfg *config.Config) *deps {
	return &deps{
		cfg:       cfg,
		runner:    &importcheck.RealRunner{},
		supabase:  supabasecheck.RealConnector{},
		files:     supabasecheck.RealFileWriter{},
		fs:        credcheck.RealFileSystem{},
		dialer:    &tcpcheck.RealDialer{},
		openDB:    dbcheck.OpenPostgres,
		embedders: embedcheck.NewGeminiEmbedder,
	}
}
