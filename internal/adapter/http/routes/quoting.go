package routes

import (
	"gardenbuild/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathConfigurations = "/configurations"
	PathQuotes         = "/quotes"
	PathWizard         = "/wizard"
)

func addQuotingRoutes(
	rg *gin.RouterGroup,
	configurationHandler *handlers.ConfigurationHandler,
	quoteHandler *handlers.QuoteHandler,
	wizardHandler *handlers.WizardHandler,
) {
	configurations := rg.Group(PathConfigurations)
	{
		configurations.POST("", configurationHandler.CreateConfiguration)
		configurations.GET("", configurationHandler.ListConfigurations)
		configurations.GET("/:id", configurationHandler.GetConfiguration)
		configurations.PATCH("/:id", configurationHandler.UpdateConfiguration)
		configurations.DELETE("/:id", configurationHandler.DeleteConfiguration)
	}

	quotes := rg.Group(PathQuotes)
	{
		quotes.POST("", quoteHandler.CreateQuote)
		quotes.GET("", quoteHandler.ListQuotes)
		quotes.GET("/:id", quoteHandler.GetQuote)
		quotes.GET("/number/:number", quoteHandler.GetQuoteByNumber)
		quotes.PATCH("/:id/status", quoteHandler.TransitionQuote)
		quotes.PATCH("/:id/customer", quoteHandler.UpdateQuoteCustomer)
		quotes.POST("/:id/payments", quoteHandler.AppendQuotePayment)
		quotes.DELETE("/:id", quoteHandler.DeleteQuote)
	}

	wizardRoutes := rg.Group(PathWizard)
	{
		wizardRoutes.POST("", wizardHandler.StartWizard)
		wizardRoutes.GET("/:id", wizardHandler.GetWizard)
		wizardRoutes.PATCH("/:id", wizardHandler.UpdateWizard)
		wizardRoutes.POST("/:id/complete", wizardHandler.CompleteWizard)
		wizardRoutes.DELETE("/:id", wizardHandler.DiscardWizard)
	}
}
