package shared

type ServerConfig struct {
	Rolodex  RolodexConfig  `mapstructure:"rolodex" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Google   GoogleConfig   `mapstructure:"google" validate:"required"`
}

type RolodexConfig struct {
	PrivateKeyPem string         `mapstructure:"privateKeyPem" validate:"required"`
	StagingDir    string         `mapstructure:"stagingDir"`
	Listener      ListenerConfig `mapstructure:"listener" validate:"required"`
}

type ListenerConfig struct {
	Port int `mapstructure:"port" validate:"required"`
}

type DatabaseConfig struct {
	Dsn string `mapstructure:"dsn" validate:"required"`
}

type GoogleConfig struct {
	ApplicationCredentials string        `mapstructure:"applicationCredentials"`
	Storage                StorageConfig `mapstructure:"storage" validate:"required"`
}

type StorageConfig struct {
	Bucket string `mapstructure:"bucket" validate:"required"`
}
