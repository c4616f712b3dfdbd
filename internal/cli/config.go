package cli

import (
	"msxcat/internal/config"
)

var defaultKeyList = []string{
	"./msxcat.json",
	"/etc/msxcat/config.json",
}

func LoadConfig(explicit string) (*config.Config, error) {
	keyLists := append([]string{explicit}, defaultKeyList...)
	return config.LoadFirst(keyLists...)
}
