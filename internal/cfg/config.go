package cfg

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/pelletier/go-toml"
)

const (
	DefGithubWebhookEndpoint = "/listener/github"
	DefMetricsEndpoint       = "/metrics"
	DefLogFormat             = "logfmt"
	DefLogTimeKey            = "time_iso8601"
	DefLogLevel              = "info"
	DefRetryTimeout          = 10 * time.Minute

	DefPendingAuthorLabel  = "pending author"
	DefReviewRequiredLabel = "review required"
	DefReadyToMergeLabel   = "RTM"
)

type Config struct {
	HTTPListenAddr            string `toml:"http_server_listen_addr"`
	HTTPSListenAddr           string `toml:"https_server_listen_addr"`
	HTTPSCertFile             string `toml:"https_ssl_cert_file"`
	HTTPSKeyFile              string `toml:"https_ssl_key_file"`
	HTTPGithubWebhookEndpoint string `toml:"github_webhook_endpoint"`
	PrometheusMetricsEndpoint string `toml:"prometheus_metrics_endpoint"`
	GithubWebHookSecret       string `toml:"github_webhook_secret"`
	GithubAPIToken            string `toml:"github_api_token"`
	LogFormat                 string `toml:"log_format"`
	LogTimeKey                string `toml:"log_time_key"`
	LogLevel                  string `toml:"log_level"`
	// RetryTimeout is a duration string as accepted by time.ParseDuration.
	RetryTimeout string `toml:"retry_timeout"`
	// Repositories restricts processing to events of the listed
	// repositories, in the format <owner>/<name>.
	// If it is empty, events of all repositories are processed.
	Repositories  []string      `toml:"repositories"`
	PendingAuthor PendingAuthor `toml:"pending_author"`
	ReviewLabels  ReviewLabels  `toml:"review_labels"`
}

type PendingAuthor struct {
	Disabled bool   `toml:"disabled"`
	Label    string `toml:"label"`
}

type ReviewLabels struct {
	Disabled            bool   `toml:"disabled"`
	ReviewRequiredLabel string `toml:"review_required_label"`
	ReadyToMergeLabel   string `toml:"ready_to_merge_label"`
}

func Load(reader io.Reader) (*Config, error) {
	var result Config

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}

	if err := toml.Unmarshal(data, &result); err != nil {
		return nil, err
	}

	result.setDefaults()

	if err := result.validate(); err != nil {
		return nil, err
	}

	return &result, nil
}

func setDefault(field *string, def string) {
	if *field == "" {
		*field = def
	}
}

func (c *Config) setDefaults() {
	setDefault(&c.HTTPGithubWebhookEndpoint, DefGithubWebhookEndpoint)
	setDefault(&c.PrometheusMetricsEndpoint, DefMetricsEndpoint)
	setDefault(&c.LogFormat, DefLogFormat)
	setDefault(&c.LogTimeKey, DefLogTimeKey)
	setDefault(&c.LogLevel, DefLogLevel)
	setDefault(&c.RetryTimeout, DefRetryTimeout.String())
	setDefault(&c.PendingAuthor.Label, DefPendingAuthorLabel)
	setDefault(&c.ReviewLabels.ReviewRequiredLabel, DefReviewRequiredLabel)
	setDefault(&c.ReviewLabels.ReadyToMergeLabel, DefReadyToMergeLabel)
}

func (c *Config) validate() error {
	if c.HTTPListenAddr == "" && c.HTTPSListenAddr == "" {
		return errors.New("https_server_listen_addr or http_server_listen_addr must be defined, both are unset")
	}

	if c.HTTPSListenAddr != "" && (c.HTTPSCertFile == "" || c.HTTPSKeyFile == "") {
		return errors.New("https_server_listen_addr is set but https_ssl_cert_file or https_ssl_key_file is missing")
	}

	if _, err := c.RetryTimeoutDuration(); err != nil {
		return err
	}

	for _, repo := range c.Repositories {
		owner, name, found := strings.Cut(repo, "/")
		if !found || owner == "" || name == "" {
			return fmt.Errorf("repositories: %q is not in the format <owner>/<name>", repo)
		}
	}

	if c.PendingAuthor.Disabled && c.ReviewLabels.Disabled {
		return errors.New("pending_author and review_labels are disabled, nothing to do")
	}

	return nil
}

// RetryTimeoutDuration returns RetryTimeout as time.Duration.
func (c *Config) RetryTimeoutDuration() (time.Duration, error) {
	d, err := time.ParseDuration(c.RetryTimeout)
	if err != nil {
		return 0, fmt.Errorf("retry_timeout: %w", err)
	}

	if d <= 0 {
		return 0, fmt.Errorf("retry_timeout: must be positive, is %s", d)
	}

	return d, nil
}

func (c *Config) Marshal(writer io.Writer) error {
	return toml.NewEncoder(writer).Encode(c)
}
