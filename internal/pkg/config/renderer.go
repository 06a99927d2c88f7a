package config

import "time"

type RendererConfig struct {
	RabbitMQURL          string        `envconfig:"RABBITMQ_URL" required:"true"`
	RabbitMQConsumeQueue string        `envconfig:"RABBITMQ_CONSUME_QUEUE" required:"true"`
	RabbitMQPublishQueue string        `envconfig:"RABBITMQ_PUBLISH_QUEUE" required:"true"`
	GitHubToken          string        `envconfig:"GITHUB_TOKEN" required:"true"`
	RedisAddr            string        `split_words:"true" required:"true"`
	DatabaseURL          string        `split_words:"true" required:"true"`
	LockTTL              time.Duration `split_words:"true" default:"10m"`
	RenderTimeout        time.Duration `split_words:"true" default:"1m"`
	Tagline              string        `split_words:"true"`
	Debug                bool          `split_words:"true"`
}
