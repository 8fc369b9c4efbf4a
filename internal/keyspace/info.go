package keyspace

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"
)

// ServerInfo holds engine details parsed from the INFO server section.
type ServerInfo struct {
	Engine  string // "redis" or "valkey"
	Version string
	Mode    string // standalone, cluster, sentinel
	OS      string
}

// GetServerInfo queries and parses the INFO server section of a keyspace.
// Valkey servers report a valkey_version field alongside redis_version;
// its presence decides the engine.
func GetServerInfo(ctx context.Context, client *redis.Client) (*ServerInfo, error) {
	raw, err := client.Info(ctx, "server").Result()
	if err != nil {
		return nil, fmt.Errorf("failed to query server info: %w", err)
	}

	fields := parseInfoSection(raw)

	info := &ServerInfo{
		Engine:  "redis",
		Version: fields["redis_version"],
		Mode:    fields["redis_mode"],
		OS:      fields["os"],
	}

	if v, ok := fields["valkey_version"]; ok {
		info.Engine = "valkey"
		info.Version = v
	}

	if info.Version == "" {
		return nil, fmt.Errorf("server info missing version field")
	}

	return info, nil
}

// parseInfoSection splits an INFO response into key/value pairs.
// Lines starting with '#' are section headers and skipped.
func parseInfoSection(raw string) map[string]string {
	fields := make(map[string]string)

	scanner := bufio.NewScanner(strings.NewReader(raw))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.SplitN(line, ":", 2)
		if len(parts) != 2 {
			continue
		}
		fields[parts[0]] = parts[1]
	}

	return fields
}

func (s *ServerInfo) String() string {
	if s.Mode != "" {
		return fmt.Sprintf("%s %s (%s)", s.Engine, s.Version, s.Mode)
	}
	return fmt.Sprintf("%s %s", s.Engine, s.Version)
}
