package cmd

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/abhisek/mapquiz/internal/catalog"
	"github.com/abhisek/mapquiz/internal/progress"
	"github.com/abhisek/mapquiz/internal/region"
	"github.com/abhisek/mapquiz/internal/spacedrep"
	"github.com/abhisek/mapquiz/internal/store"
	"github.com/spf13/cobra"
)

// defaultCatalogPath is where `generate` writes and every other command reads.
const defaultCatalogPath = "data/questions.json"

// settings are the persistent flags resolved against the environment.
type settings struct {
	Driver  string
	DSN     string
	Catalog string
	Policy  spacedrep.MasteryPolicy
}

// lookupSetting returns the flag value when set, then the env var, then def.
func lookupSetting(cmd *cobra.Command, flag, env, def string) string {
	if v, _ := cmd.Flags().GetString(flag); v != "" {
		return v
	}
	if v := os.Getenv(env); v != "" {
		return v
	}
	return def
}

func resolveSettings(cmd *cobra.Command) (settings, error) {
	s := settings{
		Driver:  lookupSetting(cmd, "db-driver", "MAPQUIZ_DB_DRIVER", store.DriverSQLite),
		Catalog: lookupSetting(cmd, "catalog", "MAPQUIZ_CATALOG", defaultCatalogPath),
	}

	policy, err := spacedrep.ParsePolicy(lookupSetting(cmd, "mastery-policy", "MAPQUIZ_MASTERY_POLICY", ""))
	if err != nil {
		return settings{}, err
	}
	s.Policy = policy

	s.DSN, err = resolveDSN(cmd, s.Driver)
	if err != nil {
		return settings{}, fmt.Errorf("resolve database: %w", err)
	}
	return s, nil
}

// resolveDSN returns the --db flag (highest priority), then MAPQUIZ_DB.
// SQLite falls back to the default XDG path; the network drivers need one
// of the two.
func resolveDSN(cmd *cobra.Command, driver string) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		if driver == store.DriverSQLite {
			return p, store.EnsureDir(p)
		}
		return p, nil
	}
	if driver == store.DriverSQLite {
		return store.DefaultDBPath()
	}
	if dsn := os.Getenv("MAPQUIZ_DB"); dsn != "" {
		return dsn, nil
	}
	return "", fmt.Errorf("--db or MAPQUIZ_DB is required for the %s driver", driver)
}

func openStore(cmd *cobra.Command) (*store.Store, settings, error) {
	s, err := resolveSettings(cmd)
	if err != nil {
		return nil, settings{}, err
	}
	st, err := store.Open(s.Driver, s.DSN)
	if err != nil {
		return nil, settings{}, fmt.Errorf("open store: %w", err)
	}
	return st, s, nil
}

// catalogLoader logs the load-time warnings of the catalog it wraps.
type catalogLoader struct {
	catalog.Loader
}

func (l catalogLoader) Load() (*catalog.Catalog, error) {
	c, err := l.Loader.Load()
	if err != nil {
		return nil, err
	}
	for _, w := range c.Report().Warnings() {
		log.Print(w)
	}
	return c, nil
}

// openEngine opens the store and builds an initialized progress engine.
// The caller closes the returned store.
func openEngine(ctx context.Context, cmd *cobra.Command) (*progress.Engine, *store.Store, error) {
	st, s, err := openStore(cmd)
	if err != nil {
		return nil, nil, err
	}

	regions, err := region.NewChain(region.Morocco())
	if err != nil {
		st.Close()
		return nil, nil, err
	}

	engine, err := progress.New(progress.Config{
		Regions: regions,
		Catalog: catalogLoader{catalog.Loader{Path: s.Catalog, Regions: regions}},
		Store:   st,
		Policy:  s.Policy,
	})
	if err != nil {
		st.Close()
		return nil, nil, err
	}
	if err := engine.Initialize(ctx); err != nil {
		st.Close()
		return nil, nil, fmt.Errorf("initialize progress: %w", err)
	}
	return engine, st, nil
}
