package config

type AppConfig struct {
	Server ServerConfig
	Rules  RulesConfig
	Log    LogConfig
}

func LoadApp() (AppConfig, error) {
	logCfg, err := LoadLog()
	if err != nil {
		return AppConfig{}, err
	}
	serverCfg, err := LoadServer()
	if err != nil {
		return AppConfig{}, err
	}
	rulesCfg, err := LoadRules()
	if err != nil {
		return AppConfig{}, err
	}
	return AppConfig{
		Server: serverCfg,
		Rules:  rulesCfg,
		Log:    logCfg,
	}, nil
}
