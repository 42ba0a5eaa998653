package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"campus-navigator/catalog"
	"campus-navigator/config"
	"campus-navigator/logging"
	"campus-navigator/model"
	"campus-navigator/navigation"
	"campus-navigator/provider"
	"campus-navigator/render"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	if verbose {
		cfg.Debug = true
	}
	return cfg, nil
}

// localCatalog 命令行直接读取目录文件或内置目录，不连数据库
func localCatalog(cfg *config.Config) (*catalog.Catalog, error) {
	if cfg.Catalog != "" {
		return catalog.LoadFromFile(cfg.Catalog)
	}
	return catalog.New(catalog.DefaultLocations())
}

func newDirections(cfg config.DirectionsConfig) (navigation.DirectionsProvider, error) {
	switch cfg.Provider {
	case config.ProviderGoogle:
		return provider.NewGoogleDirections(cfg.GoogleAPIKey, cfg.GoogleBaseURL, cfg.Timeout), nil
	case config.ProviderValhalla:
		return provider.NewValhallaDirections(cfg.ValhallaURL, cfg.Timeout), nil
	default:
		return nil, fmt.Errorf("未知的方向服务: %q", cfg.Provider)
	}
}

// parsePoint 解析 "lat,lng"
func parsePoint(s string) (model.Point, error) {
	lat, lng, ok := strings.Cut(s, ",")
	if !ok {
		return model.Point{}, fmt.Errorf("坐标格式应为 lat,lng: %q", s)
	}
	la, err := strconv.ParseFloat(strings.TrimSpace(lat), 64)
	if err != nil {
		return model.Point{}, fmt.Errorf("纬度无效: %w", err)
	}
	ln, err := strconv.ParseFloat(strings.TrimSpace(lng), 64)
	if err != nil {
		return model.Point{}, fmt.Errorf("经度无效: %w", err)
	}
	p := model.Point{Lat: la, Lng: ln}
	if !p.Valid() {
		return model.Point{}, fmt.Errorf("坐标超出范围: %s", p)
	}
	return p, nil
}

func newLocationsCmd() *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "locations [query]",
		Short: "搜索校园地点",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			cat, err := localCatalog(cfg)
			if err != nil {
				return err
			}

			c := model.Category(category)
			if c != "" && !c.IsValid() {
				return fmt.Errorf("未知的地点类别 %q (可选: %v)", category, model.Categories())
			}

			var query string
			if len(args) == 1 {
				query = args[0]
			}
			printLocations(cmd, cat.Filter(query, c))
			return nil
		},
	}
	cmd.Flags().StringVarP(&category, "category", "c", "", "按类别过滤 (academic, facility, residence, recreation)")
	return cmd
}

func printLocations(cmd *cobra.Command, locations []model.Location) {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tPOSITION")
	for _, loc := range locations {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", loc.ID, loc.Name, loc.Category, loc.Position)
	}
	w.Flush()
}

type directionsFlags struct {
	from    string
	to      int
	timeout time.Duration
}

func (f *directionsFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.from, "from", "", "起点 lat,lng (不填时使用校园中心)")
	fs.IntVar(&f.to, "to", 0, "目的地 ID")
	fs.DurationVar(&f.timeout, "timeout", 30*time.Second, "整个查询的超时时间")
}

func newDirectionsCmd() *cobra.Command {
	var flags directionsFlags

	cmd := &cobra.Command{
		Use:   "directions --to <id> [--from lat,lng]",
		Short: "查询到某个地点的步行路线",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if err := cfg.ValidateDirections(); err != nil {
				return err
			}
			logging.InitWriter(os.Stderr, cfg.Debug)

			cat, err := localCatalog(cfg)
			if err != nil {
				return err
			}
			directions, err := newDirections(cfg.Directions)
			if err != nil {
				return err
			}

			var geo navigation.GeolocationProvider = provider.Unsupported{}
			if flags.from != "" {
				p, err := parsePoint(flags.from)
				if err != nil {
					return err
				}
				geo = provider.FixedGeolocation{Point: p}
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), flags.timeout)
			defer cancel()
			return runDirections(ctx, cmd, cat, geo, directions, cfg.Geolocation, flags.to)
		},
	}
	flags.register(cmd.Flags())
	_ = cmd.MarkFlagRequired("to")
	return cmd
}

func runDirections(ctx context.Context, cmd *cobra.Command, cat *catalog.Catalog, geo navigation.GeolocationProvider,
	directions navigation.DirectionsProvider, geoCfg config.GeolocationConfig, to int) error {
	notices := render.NewNoticeLog(render.DefaultNoticeCapacity)
	ctrl := navigation.NewController(cat, geo, directions, navigation.Options{
		Fallback:           geoCfg.Fallback(),
		GeolocationTimeout: geoCfg.Timeout,
		Notifier:           notices,
	})

	defer func() {
		for _, n := range notices.Drain() {
			fmt.Fprintf(cmd.ErrOrStderr(), "[%s] %s: %s\n", n.Variant, n.Title, n.Description)
		}
	}()

	if err := ctrl.SelectLocationByID(to); err != nil {
		if errors.Is(err, catalog.ErrLocationNotFound) {
			return fmt.Errorf("地点 %d 不存在", to)
		}
		return err
	}
	pos := ctrl.AcquireUserPosition(ctx)

	route, err := ctrl.RequestDirections(ctx)
	if err != nil {
		return err
	}

	snap := ctrl.Snapshot()
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "From:     %s (%s)\n", pos.Position, pos.Source)
	if loc, meters, ok := cat.Nearest(pos.Position); ok {
		fmt.Fprintf(out, "Near:     %s (%s)\n", loc.Name, navigation.FormatDistance(meters))
	}
	fmt.Fprintf(out, "To:       %s\n", snap.Selected.Name)
	fmt.Fprintf(out, "Distance: %s\n", snap.Display.Distance)
	fmt.Fprintf(out, "Duration: %s\n", snap.Display.Duration)
	for i, step := range route.Steps {
		fmt.Fprintf(out, "%3d. %s (%s)\n", i+1, step.Instruction, navigation.FormatDistance(step.DistanceMeters))
	}
	return nil
}
