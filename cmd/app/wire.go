//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"
	openai "github.com/sashabaranov/go-openai"

	"github.com/yourbr0ther/transcriptor/internal/bootstrap"
	"github.com/yourbr0ther/transcriptor/internal/domain/summary"
	"github.com/yourbr0ther/transcriptor/internal/domain/transcript"
	"github.com/yourbr0ther/transcriptor/internal/infra/config"
	"github.com/yourbr0ther/transcriptor/internal/infra/youtube/captions"
	"github.com/yourbr0ther/transcriptor/internal/infra/youtube/oembed"
	httpiface "github.com/yourbr0ther/transcriptor/internal/interface/http"
	"github.com/yourbr0ther/transcriptor/pkg/logger"
)

func initializeApp() (*bootstrap.App, error) {
	wire.Build(
		config.Load,
		logger.New,
		provideTranscriptConfig,
		provideSummaryConfig,
		provideGroqClient,
		provideCaptionClient,
		provideMetadataClient,
		transcript.NewService,
		summary.NewService,
		wire.Bind(new(transcript.CaptionClient), new(*captions.Client)),
		wire.Bind(new(transcript.MetadataClient), new(*oembed.Client)),
		wire.Bind(new(summary.ChatClient), new(*openai.Client)),
		httpiface.NewHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil
}
