package banner

import (
	"fmt"
	"io"
	"runtime"
)

const banner = `
  _____                 _     ____
 | ____|_   _____ _ __ | |_  / ___|  ___ __ _ _ __
 |  _| \ \ / / _ \ '_ \| __| \___ \ / __/ _' | '_ \
 | |___ \ V /  __/ | | | |_   ___) | (_| (_| | | | |
 |_____| \_/ \___|_| |_|\__| |____/ \___\__,_|_| |_|
`

// BuildInfo 编译时通过 ldflags 注入的版本信息
type BuildInfo struct {
	Version    string
	CommitHash string
	BuildTime  string
}

// Print 打印启动横幅，包含版本、构建信息以及监听地址和数据库驱动
func Print(w io.Writer, info BuildInfo, addr, driver string) {
	fmt.Fprint(w, banner)
	fmt.Fprintf(w, "  Version:     %s\n", info.Version)

	if commit := info.CommitHash; commit != "" && commit != "unknown" {
		// 如果 commit hash 太长，只显示前 7 位
		if len(commit) > 7 {
			commit = commit[:7]
		}
		fmt.Fprintf(w, "  Commit:      %s\n", commit)
	}

	if info.BuildTime != "" && info.BuildTime != "unknown" {
		fmt.Fprintf(w, "  Build Time:  %s\n", info.BuildTime)
	}

	fmt.Fprintf(w, "  Go Version:  %s\n", runtime.Version())
	fmt.Fprintf(w, "  OS/Arch:     %s/%s\n", runtime.GOOS, runtime.GOARCH)
	if addr != "" {
		fmt.Fprintf(w, "  Listen:      %s\n", addr)
	}
	if driver != "" {
		fmt.Fprintf(w, "  Database:    %s\n", driver)
	}
	fmt.Fprintln(w)
}
