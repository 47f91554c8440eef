package config

// NewAppForTest creates an App config pointing at path
func NewAppForTest(path string) *App {
	return &App{path: path}
}

// NewAuthForTest creates an Auth config for testing purposes
func NewAuthForTest(jwtSecret, noAuthUID string) *Auth {
	return &Auth{jwtSecret: jwtSecret, noAuthUID: noAuthUID}
}

// NewSlackForTest creates a Slack config for testing purposes
func NewSlackForTest(botToken, channel string) *Slack {
	return &Slack{botToken: botToken, channel: channel}
}

// NewLoggerForTest creates a Logger config for testing purposes
func NewLoggerForTest(level, format, output string) *Logger {
	return &Logger{level: level, format: format, output: output}
}

// NewRepositoryForTest creates a Repository config for testing purposes
func NewRepositoryForTest(backend string) *Repository {
	return &Repository{backend: backend}
}
