package tenant

// Step names one stage of Setup.
type Step string

const (
	StepPort     Step = "port"
	StepGenerate Step = "generate"
	StepValidate Step = "validate"
	StepReload   Step = "reload"
)

// SetupResult describes how far Setup got.
type SetupResult struct {
	TenantID   string `json:"id"`
	Domain     string `json:"domain"`
	Port       int    `json:"port"`
	ConfigPath string `json:"config,omitempty"`
	Completed  []Step `json:"completed"`
}

// Done reports whether step finished successfully.
func (r *SetupResult) Done(step Step) bool {
	for _, s := range r.Completed {
		if s == step {
			return true
		}
	}
	return false
}

// Setup provisions a tenant route: it allocates a port when port is 0,
// generates and links the config, tests it and reloads the web server.
// It stops at the first failing step and returns the partial result with
// the error. Reload is never attempted after a failed test.
func (m *Manager) Setup(tenantID, domain string, port int) (*SetupResult, error) {
	res := &SetupResult{
		TenantID:  tenantID,
		Domain:    domain,
		Port:      port,
		Completed: []Step{},
	}

	if err := validateTenantID(tenantID); err != nil {
		return res, err
	}
	if err := validateDomain(domain); err != nil {
		return res, err
	}
	res.Domain = m.NormalizeDomain(domain)

	if port == 0 {
		p, err := m.NextPort()
		if err != nil {
			return res, err
		}
		res.Port = p
	} else if err := validatePort(port); err != nil {
		return res, err
	}
	res.Completed = append(res.Completed, StepPort)

	path, err := m.Generate(tenantID, domain, res.Port)
	if err != nil {
		return res, err
	}
	res.ConfigPath = path
	res.Completed = append(res.Completed, StepGenerate)

	if err := m.Validate(); err != nil {
		return res, err
	}
	res.Completed = append(res.Completed, StepValidate)

	if err := m.Reload(); err != nil {
		return res, err
	}
	res.Completed = append(res.Completed, StepReload)

	return res, nil
}
