package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "campus-navigator",
	Short: "校园导航服务 - 地点搜索、定位与步行路线",
	Long: `campus-navigator 为校园应用提供导航后端：
地点目录搜索、用户定位 (失败时退回校园中心)、
通过外部路线服务获取步行路线，并给出距离和时间。`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "配置文件 (默认 ./config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "输出调试日志")

	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newLocationsCmd())
	rootCmd.AddCommand(newDirectionsCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
