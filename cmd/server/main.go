package main

import "dolpcrm/internal/app"

// @title           Dolp CRM API
// @version         1.0
// @description     API do CRM comercial da Dolp Engenharia: funil de oportunidades, precificação por empresa referência e relatórios.

// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization

// @host      localhost:8080
// @BasePath  /
func main() {
	app.Run()
}
