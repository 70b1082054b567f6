package config

import (
	"time"

	"github.com/spf13/viper"
)

// setDefaults sets the default configuration values
func setDefaults(v *viper.Viper) {
	// Oracle Configuration - Global defaults
	v.SetDefault("oracle.provider", "gemini")
	v.SetDefault("oracle.model", "gemini-2.0-flash")
	v.SetDefault("oracle.timeout", 60*time.Second)
	v.SetDefault("oracle.apiKey", "")
	v.SetDefault("oracle.maxRetries", 3)
	v.SetDefault("oracle.temperature", 0.3)
	v.SetDefault("oracle.useSystemPrompts", true)

	// Oracle Configuration - Job analysis agent defaults
	v.SetDefault("oracle.jobAnalysis.timeout", 75*time.Second) // Moderate timeout for analysis
	v.SetDefault("oracle.jobAnalysis.maxRetries", 2)
	v.SetDefault("oracle.jobAnalysis.temperature", 0.3) // Low temperature for consistent extraction

	// Oracle Configuration - Resume parse agent defaults
	v.SetDefault("oracle.resumeParse.timeout", 90*time.Second) // Longer timeout for large documents
	v.SetDefault("oracle.resumeParse.temperature", 0.2)        // Very low temperature for faithful parsing

	// Oracle Configuration - Quality review agent defaults
	v.SetDefault("oracle.quality.timeout", 60*time.Second)
	v.SetDefault("oracle.quality.temperature", 0.3)

	// Oracle Configuration - Content optimization agent defaults
	v.SetDefault("oracle.optimize.timeout", 60*time.Second)
	v.SetDefault("oracle.optimize.temperature", 0.4) // Warmer for rewriting suggestions

	// Oracle Configuration - Match scoring agent defaults
	v.SetDefault("oracle.score.timeout", 60*time.Second)
	v.SetDefault("oracle.score.temperature", 0.3)

	// Oracle Configuration - Role calibration agent defaults
	v.SetDefault("oracle.calibrate.timeout", 60*time.Second)
	v.SetDefault("oracle.calibrate.temperature", 0.4)

	// Circuit Breaker Configuration defaults for all agents
	for _, agent := range []string{"jobAnalysis", "resumeParse", "quality", "optimize", "score", "calibrate"} {
		v.SetDefault("oracle."+agent+".circuitBreaker.enabled", true)
		v.SetDefault("oracle."+agent+".circuitBreaker.maxRequests", 3)
		v.SetDefault("oracle."+agent+".circuitBreaker.interval", 60*time.Second)
		v.SetDefault("oracle."+agent+".circuitBreaker.timeout", 60*time.Second)
		v.SetDefault("oracle."+agent+".circuitBreaker.minRequests", 3)
		v.SetDefault("oracle."+agent+".circuitBreaker.failureThreshold", 0.6)
	}

	// Server Configuration
	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.readTimeout", 30*time.Second)
	v.SetDefault("server.writeTimeout", 120*time.Second) // Pipeline runs can take a while
	v.SetDefault("server.idleTimeout", 120*time.Second)
	// TLS Configuration defaults
	v.SetDefault("server.tls.mode", "disabled") // disabled, server
	v.SetDefault("server.tls.certFile", "")
	v.SetDefault("server.tls.keyFile", "")
	v.SetDefault("server.tls.minVersion", "1.2") // TLS 1.2 minimum
	// API Authentication defaults
	v.SetDefault("server.apiKeys", []string{})
	// Rate limiting defaults
	v.SetDefault("server.rateLimit.enabled", false)
	v.SetDefault("server.rateLimit.requestsPerMin", 60)
	v.SetDefault("server.rateLimit.burstCapacity", 10)
	v.SetDefault("server.rateLimit.byIP", true)
	v.SetDefault("server.rateLimit.byAPIKey", false)

	// App Configuration
	v.SetDefault("app.logLevel", "info")
	v.SetDefault("app.defaultFormat", "json")
	v.SetDefault("app.supportedFormats", []string{"json", "html", "markdown"})
	v.SetDefault("app.maxFileSize", 1024*1024) // 1MB

	// Vault Configuration
	v.SetDefault("vault.enabled", false)
	v.SetDefault("vault.address", "")
	v.SetDefault("vault.token", "")
	v.SetDefault("vault.tokenFile", "")
	v.SetDefault("vault.namespace", "")
	v.SetDefault("vault.secrets.apiKeys", "")
	v.SetDefault("vault.secrets.oracleKey", "")

	// Observability Configuration
	v.SetDefault("observability.enabled", true)
	v.SetDefault("observability.serviceName", "resumeforge")
	v.SetDefault("observability.serviceVersion", "")  // Will use app version if empty
	v.SetDefault("observability.serviceInstance", "") // Will be auto-generated if empty
	v.SetDefault("observability.consoleOutput", false)
	v.SetDefault("observability.sampleRate", 1.0)

	// Tracing Configuration
	v.SetDefault("observability.tracing.enabled", true)
	v.SetDefault("observability.tracing.sampleRate", 1.0)

	// Metrics Configuration
	v.SetDefault("observability.metrics.enabled", true)
	v.SetDefault("observability.metrics.collectionInterval", 15*time.Second)

	// Console Configuration
	v.SetDefault("observability.console.enabled", false)
	v.SetDefault("observability.console.prettyPrint", true)

	// Prometheus Configuration
	v.SetDefault("observability.prometheus.enabled", true)
	v.SetDefault("observability.prometheus.endpoint", "/metrics")
	v.SetDefault("observability.prometheus.port", "9090")

	// OTLP Configuration
	v.SetDefault("observability.otlp.enabled", false)
	v.SetDefault("observability.otlp.endpoint", "http://localhost:4318")
	v.SetDefault("observability.otlp.insecure", true)
	v.SetDefault("observability.otlp.headers", map[string]string{})

	// Health Check Configuration
	v.SetDefault("observability.healthCheck.timeout", 15*time.Second)
	v.SetDefault("observability.healthCheck.modelCheckTimeout", 10*time.Second)
}
