package config

import (
	"os"
	"path/filepath"
)

// Load 读取 yaml 配置并反序列化到 out。
// 约定：
// 1) 传入 cfgName（相对/绝对路径）则优先使用；
// 2) 否则从当前目录开始向上查找 cfgName。
func Load(cfgName string, out any) {
	curDir, err := os.Getwd()
	if err != nil {
		panic(err)
	}

	if filepath.IsAbs(cfgName) {
		load(cfgName, out)
		return
	}
	if fileExist(filepath.Join(curDir, cfgName)) {
		load(filepath.Join(curDir, cfgName), out)
		return
	}

	load(findConfigUpward(curDir, cfgName), out)
}

func findConfigUpward(startDir, relPath string) string {
	dir := startDir
	for {
		candidate := filepath.Join(dir, relPath)
		if fileExist(candidate) {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			panic("config file not exist, searched " + relPath + " from: " + startDir)
		}
		dir = parent
	}
}
