package server

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/rolodexhq/rolodex/server/auth/key"
	"github.com/rolodexhq/rolodex/server/gstorage"
	"github.com/rolodexhq/rolodex/server/logger"
	"github.com/rolodexhq/rolodex/server/models"
	"github.com/rolodexhq/rolodex/shared"
	"github.com/spf13/viper"
)

// Start wires the shared clients(database, object storage, signing keys) into
// the request pipeline & serves until interrupted.
func Start(config *viper.Viper) {
	logg := logger.NewLogger()

	serverConfig := shared.ServerConfig{}
	fatalOnError(logg, config.Unmarshal(&serverConfig))
	fatalOnError(logg, validate.Struct(serverConfig))

	db, err := models.Open(serverConfig.Database.Dsn)
	fatalOnError(logg, err)
	store := models.NewStore(db)

	keyPair, err := key.NewKeyPairFromRSAPrivateKeyPem([]byte(serverConfig.Rolodex.PrivateKeyPem))
	fatalOnError(logg, err)

	gStorage, err := gstorage.NewGStorage(serverConfig.Google.ApplicationCredentials)
	fatalOnError(logg, err)

	stagingDir := serverConfig.Rolodex.StagingDir
	if stagingDir == "" {
		stagingDir = filepath.Join(os.TempDir(), "rolodex")
	}

	uploader := NewUploader(store, gStorage, serverConfig.Google.Storage.Bucket, stagingDir, logg)
	app := NewApp(store, uploader, keyPair, logg)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%v", serverConfig.Rolodex.Listener.Port),
		Handler: NewRouter(app),
	}
	go serve(server, logg)

	sigChannel := make(chan os.Signal, 1)
	signal.Notify(sigChannel, syscall.SIGINT, syscall.SIGTERM)
	<-sigChannel

	cleanup(server, logg)
}
