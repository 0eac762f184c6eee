package config

const (
	KeyPostgresURL    = "postgres_url"
	KeyDBDebug        = "db_debug"
	KeyAutoMigrate    = "auto_migrate"
	KeyOllamaURL      = "ollama_url"
	KeyLogLevel       = "log_level"
	KeyGitHubToken    = "github_token"
	KeyWebhookSecret  = "github_webhook_secret"
	KeyRepositoryURL  = "repository_url"
	KeyReviewEnabled  = "review_enabled"
	KeyReviewModel    = "review_model"
	KeyEmbeddingModel = "embedding_model_name"
	KeyReviewContext  = "review_context_tokens"
	KeyLLMTimeout     = "llm_call_timeout"
	KeyMaxReviewFiles = "max_review_files"
	KeyPostComments   = "post_comments"
	KeyPolicyFile     = "policy_file"
	KeyListenAddr     = "listen_addr"
)
