package config

type ManagerConfig struct {
	DatabaseURL       string `split_words:"true" required:"true"`
	RabbitMQURL       string `envconfig:"RABBITMQ_URL" required:"true"`
	RefreshQueueName  string `split_words:"true" required:"true"`
	RenderedQueueName string `split_words:"true" required:"true"`
	ServerPort        int    `split_words:"true" required:"true"`
	GitHubToken       string `envconfig:"GITHUB_TOKEN" required:"true"`
	Login             string `split_words:"true" required:"true"`
	Debug             bool   `split_words:"true"`
}
