package config

type Credentials struct {
	User     string `hcl:"user"`
	Password string `hcl:"password"`
}

type Host struct {
	Hostname string `hcl:"hostname"`
	Port     string `hcl:"port"`
}

type MySQL struct {
	Credentials `hcl:",squash"`
	Host        `hcl:",squash"`
	Database    string `hcl:"database"`
}

type Redis struct {
	Host     `hcl:",squash"`
	Password string `hcl:"password"`
}

type MongoDB struct {
	Credentials `hcl:",squash"`
	Host        `hcl:",squash"`
	Database    string `hcl:"database"`
	URL         string `hcl:"url"`
}

type Amqp struct {
	Credentials `hcl:",squash"`
	Host        `hcl:",squash"`
	VirtualHost string `hcl:"virtualHost"`
}

type SMTP struct {
	Host `hcl:",squash"`
}

type HTTP struct {
	Method       string `hcl:"method"`
	URL          string `hcl:"url"`
	Timeout      string `hcl:"timeout"`
	ExpectStatus string `hcl:"expectStatus"`
}

// Probe describes a backing service of the Legal CMS stack. Exactly one of
// the service blocks is expected to be set.
type Probe struct {
	Name       string   `hcl:",key"`
	Filesystem string   `hcl:"filesystem"`
	MySQL      *MySQL   `hcl:"mysql"`
	Redis      *Redis   `hcl:"redis"`
	MongoDB    *MongoDB `hcl:"mongodb"`
	Amqp       *Amqp    `hcl:"amqp"`
	SMTP       *SMTP    `hcl:"smtp"`
	HTTP       *HTTP    `hcl:"http"`
}

// Backend is the endpoint the connection probe talks to.
type Backend struct {
	URL     string `hcl:"url"`
	Timeout string `hcl:"timeout"` // empty means no timeout
}

type Config struct {
	Backend *Backend `hcl:"backend"`
	Probes  []Probe  `hcl:"probe"`
}
