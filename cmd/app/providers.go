package main

import (
	openai "github.com/sashabaranov/go-openai"

	"github.com/yourbr0ther/transcriptor/internal/domain/summary"
	"github.com/yourbr0ther/transcriptor/internal/domain/transcript"
	"github.com/yourbr0ther/transcriptor/internal/infra/config"
	"github.com/yourbr0ther/transcriptor/internal/infra/llm/groq"
	"github.com/yourbr0ther/transcriptor/internal/infra/youtube/captions"
	"github.com/yourbr0ther/transcriptor/internal/infra/youtube/oembed"
)

func provideTranscriptConfig(cfg *config.Config) transcript.Config {
	return transcript.Config{
		Languages: cfg.YouTube.Languages,
	}
}

func provideSummaryConfig(cfg *config.Config) summary.Config {
	return summary.Config{
		APIKey:             cfg.Groq.APIKey,
		Model:              cfg.Groq.Model,
		Temperature:        cfg.Groq.Temperature,
		MaxTokens:          cfg.Groq.MaxTokens,
		MaxTranscriptChars: cfg.Summary.MaxTranscriptChars,
	}
}

func provideGroqClient(cfg *config.Config) *openai.Client {
	return groq.NewClient(cfg.Groq.APIKey, cfg.Groq.BaseURL, cfg.Groq.Timeout)
}

func provideCaptionClient(cfg *config.Config) *captions.Client {
	return captions.NewClient(cfg.YouTube.InnertubeBaseURL, cfg.YouTube.CaptionTimeout)
}

func provideMetadataClient(cfg *config.Config) *oembed.Client {
	return oembed.NewClient(cfg.YouTube.OEmbedBaseURL, cfg.YouTube.MetadataTimeout)
}
