package watchdog

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"reelkeeper/internal/services"
)

// TunnelFile is the part of the tunnel client's YAML config the watchdog
// cares about.
type TunnelFile struct {
	Tunnel          string        `yaml:"tunnel"`
	CredentialsFile string        `yaml:"credentials-file"`
	Ingress         []IngressRule `yaml:"ingress"`
}

// IngressRule maps a public hostname to a local service.
type IngressRule struct {
	Hostname string `yaml:"hostname"`
	Service  string `yaml:"service"`
}

// LoadTunnelFile reads and parses the tunnel config at path.
func LoadTunnelFile(path string) (*TunnelFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "watchdog", "read tunnel config", path, err)
	}
	var tf TunnelFile
	if err := yaml.Unmarshal(data, &tf); err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "watchdog", "parse tunnel config", path, err)
	}
	tf.Tunnel = strings.TrimSpace(tf.Tunnel)
	return &tf, nil
}

// Hostnames lists the public hostnames routed by the ingress rules.
func (tf *TunnelFile) Hostnames() []string {
	var out []string
	for _, rule := range tf.Ingress {
		if h := strings.TrimSpace(rule.Hostname); h != "" {
			out = append(out, h)
		}
	}
	return out
}

// Warnings returns problems that do not stop the watchdog but likely stop
// the tunnel from starting.
func (tf *TunnelFile) Warnings(tunnelName string) []string {
	var warnings []string
	if tf.Tunnel == "" {
		warnings = append(warnings, fmt.Sprintf("tunnel config has no 'tunnel' field; relying on %q from the command line", tunnelName))
	}
	if strings.TrimSpace(tf.CredentialsFile) == "" {
		warnings = append(warnings, "tunnel config has no 'credentials-file'")
	}
	return warnings
}
