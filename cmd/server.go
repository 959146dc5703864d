package cmd

import (
	"io/ioutil"
	"log"
	"os"
	"path/filepath"

	"github.com/rolodexhq/rolodex/dev/config"
	"github.com/rolodexhq/rolodex/server"
	"github.com/rolodexhq/rolodex/utils"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// serverCmd represents the server command
var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start a rolodex server",
	Long:  `The rolodex server exposes the contact & picture-upload API`,
	Run: func(cmd *cobra.Command, args []string) {
		server.Start(serverConfig())
	},
}

var serverConfigFile string

func init() {
	rootCmd.AddCommand(serverCmd)

	serverCmd.Flags().StringVar(&serverConfigFile, "sconfig", "", "Config for server")
}

func serverConfig() *viper.Viper {
	serverConfig := viper.New()

	if isDevEnv {
		serverConfigFile = devConfigFilePath()
	}

	serverConfig.SetConfigFile(serverConfigFile)
	serverConfig.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := serverConfig.ReadInConfig(); err != nil {
		log.Panicf("error reading server config file: %v", err)
	}

	return serverConfig
}

// devConfigFilePath returns the path to the dev server config, writing the
// default one first if none exists yet.
func devConfigFilePath() string {
	workingDir, err := os.Getwd()
	if err != nil {
		log.Panic(err)
	}

	configFilePath := filepath.Join(workingDir, "dev", "config", "server.yml")
	if _, err := os.Stat(configFilePath); os.IsNotExist(err) {
		if err := utils.CreateDirIfNotExist(filepath.Dir(configFilePath)); err != nil {
			log.Panic(err)
		}

		if err := ioutil.WriteFile(configFilePath, []byte(config.SERVER_YML), 0600); err != nil {
			log.Panic(err)
		}
	}

	return configFilePath
}
