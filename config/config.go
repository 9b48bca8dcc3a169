package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type Config struct {
	ServerPort    string
	DatabaseDSN   string
	KafkaBroker   string
	KafkaTopic    string
	KafkaGroupID  string
	KafkaUsername string
	KafkaPassword string
	AccessSecret  string

	// probed once at startup; reported to the client, never gates anything
	BiometricAvailable bool
}

func LoadConfig() Config {
	if os.Getenv("ENV") != "prod" {
		if err := godotenv.Overload(); err != nil {
			logrus.WithError(err).Warn("env file not found or could not be loaded")
		}
	}

	biometric, _ := strconv.ParseBool(os.Getenv("BIOMETRIC_AVAILABLE"))

	return Config{
		ServerPort:         os.Getenv("SERVER_PORT"),
		DatabaseDSN:        os.Getenv("DATABASE_DSN"),
		KafkaBroker:        os.Getenv("KAFKA_BROKER"),
		KafkaTopic:         os.Getenv("KAFKA_TOPIC"),
		KafkaGroupID:       os.Getenv("KAFKA_GROUP_ID"),
		KafkaUsername:      os.Getenv("KAFKA_USERNAME"),
		KafkaPassword:      os.Getenv("KAFKA_PASSWORD"),
		AccessSecret:       os.Getenv("ACCESS_SECRET"),
		BiometricAvailable: biometric,
	}
}
