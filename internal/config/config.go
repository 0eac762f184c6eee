package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func Init(root *cobra.Command) {
	viper.AutomaticEnv()
	_ = godotenv.Load()
	if root != nil {
		_ = viper.BindPFlags(root.PersistentFlags())
	}
	setDefaults()
}

func setDefaults() {
	viper.SetDefault(KeyLogLevel, "info")
	viper.SetDefault(KeyDBDebug, false)
	viper.SetDefault(KeyAutoMigrate, false)
	viper.SetDefault(KeyOllamaURL, "http://localhost:11434")
	viper.SetDefault(KeyReviewEnabled, true)
	viper.SetDefault(KeyReviewModel, "phi3")
	viper.SetDefault(KeyEmbeddingModel, "nomic-embed-text")
	viper.SetDefault(KeyReviewContext, 4096)
	viper.SetDefault(KeyLLMTimeout, "2m")
	viper.SetDefault(KeyMaxReviewFiles, 30)
	viper.SetDefault(KeyPostComments, true)
	viper.SetDefault(KeyPolicyFile, ".diffscope.yaml")
	viper.SetDefault(KeyListenAddr, ":8080")
}

func PostgresURL() string            { return viper.GetString(KeyPostgresURL) }
func DBDebug() bool                  { return viper.GetBool(KeyDBDebug) }
func AutoMigrate() bool              { return viper.GetBool(KeyAutoMigrate) }
func OllamaURL() string              { return viper.GetString(KeyOllamaURL) }
func LogLevel() string               { return viper.GetString(KeyLogLevel) }
func GitHubToken() string            { return viper.GetString(KeyGitHubToken) }
func WebhookSecret() string          { return viper.GetString(KeyWebhookSecret) }
func RepositoryURL() string          { return viper.GetString(KeyRepositoryURL) }
func ReviewEnabled() bool            { return viper.GetBool(KeyReviewEnabled) }
func ReviewModel() string            { return viper.GetString(KeyReviewModel) }
func EmbeddingModel() string         { return viper.GetString(KeyEmbeddingModel) }
func ReviewContextTokens() int       { return viper.GetInt(KeyReviewContext) }
func LLMCallTimeout() time.Duration  { return viper.GetDuration(KeyLLMTimeout) }
func MaxReviewFiles() int            { return viper.GetInt(KeyMaxReviewFiles) }
func PostComments() bool             { return viper.GetBool(KeyPostComments) }
func PolicyFile() string             { return viper.GetString(KeyPolicyFile) }
func ListenAddr() string             { return viper.GetString(KeyListenAddr) }
