// Command ashurbanipalweb serves book recommendations and phonetic search
// over a Project Gutenberg catalog.
package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/tmmcguire/ashurbanipal-web-go/internal/config"
	"github.com/tmmcguire/ashurbanipal-web-go/internal/server"
	"github.com/tmmcguire/ashurbanipal-web-go/pkg/catalog"
	"github.com/tmmcguire/ashurbanipal-web-go/pkg/phonetic"
	"github.com/tmmcguire/ashurbanipal-web-go/pkg/recommend"
)

var (
	configPath string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "ashurbanipalweb",
	Short: "Recommendation and phonetic search engine over a Gutenberg catalog",
}

var serveCmd = &cobra.Command{
	Use:   "serve [style-file] [topic-file] [metadata-file]",
	Short: "Build the catalog and start the HTTP dispatcher",
	Args:  cobra.MaximumNArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(args)
		if err != nil {
			return err
		}

		log := catalogLogger(cfg)
		data, err := loadCatalog(cfg, log)
		if err != nil {
			return err
		}

		engine := &server.Engine{
			Metadata:    data.metadata,
			Style:       data.style,
			Topic:       data.topic,
			Combination: data.combination,
			Index:       data.index,
			Pagination:  server.BuildConfig(cfg.Server),
		}

		httpLog := logrus.New()
		router := server.NewRouter(engine, httpLog)

		httpLog.Infof("listening on %s", cfg.Server.Address)
		return http.ListenAndServe(cfg.Server.Address, router)
	},
}

var benchEtextNo uint64

var benchCmd = &cobra.Command{
	Use:   "bench [style-file] [topic-file] [metadata-file]",
	Short: "Load the catalog and print sorted_results for one etext",
	Args:  cobra.MaximumNArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(args)
		if err != nil {
			return err
		}

		log := catalogLogger(cfg)
		data, err := loadCatalog(cfg, log)
		if err != nil {
			return err
		}

		rows, ok := recommend.SortedResults(data.combination, benchEtextNo)
		if !ok {
			return fmt.Errorf("no matching etext %d", benchEtextNo)
		}
		for _, row := range rows {
			fmt.Printf("%d\t%g\n", row.EtextNo, row.Score)
		}
		return nil
	},
}

func loadConfig(args []string) (*config.Config, error) {
	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	var style, topic, metadata string
	if len(args) > 0 {
		style = args[0]
	}
	if len(args) > 1 {
		topic = args[1]
	}
	if len(args) > 2 {
		metadata = args[2]
	}
	cfg.ApplyPathOverrides(style, topic, metadata)
	return cfg, nil
}

func catalogLogger(cfg *config.Config) catalog.Logger {
	level := catalog.LevelInfo
	if verbose || cfg.Logging.Level == "debug" {
		level = catalog.LevelDebug
	}
	return catalog.NewStdLogger(level)
}

type loadedCatalog struct {
	metadata    *catalog.Metadata
	style       recommend.Recommender
	topic       recommend.Recommender
	combination recommend.Recommender
	index       *phonetic.Index
}

// loadCatalog reads the three catalog files concurrently, since they are
// independent until the phonetic index construction step, which depends
// only on metadata.
func loadCatalog(cfg *config.Config, log catalog.Logger) (*loadedCatalog, error) {
	var styleData *catalog.Style
	var topicData *catalog.Topic
	var metadata *catalog.Metadata

	var g errgroup.Group
	g.Go(func() error {
		var err error
		styleData, err = catalog.ReadStyle(cfg.Paths.Style, log.With("component", "style"))
		return err
	})
	g.Go(func() error {
		var err error
		topicData, err = catalog.ReadTopic(cfg.Paths.Topic, log.With("component", "topic"))
		return err
	})
	g.Go(func() error {
		var err error
		metadata, err = catalog.ReadMetadata(cfg.Paths.Metadata, log.With("component", "metadata"))
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	style := recommend.NewStyle(styleData)
	topic := recommend.NewTopic(topicData)
	combination := recommend.NewCombination(style, topic)
	index := phonetic.Build(metadata, log.With("component", "index"))

	return &loadedCatalog{
		metadata:    metadata,
		style:       style,
		topic:       topic,
		combination: combination,
		index:       index,
	}, nil
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML configuration file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose catalog logging")

	benchCmd.Flags().Uint64VarP(&benchEtextNo, "etext", "e", 0, "Reference etext number")

	rootCmd.AddCommand(serveCmd, benchCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
