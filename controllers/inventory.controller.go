package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"vaccination-service/config"
	"vaccination-service/security"
	"vaccination-service/utils"
)

type RegisterInventoryInput struct {
	Name    string `form:"inputName" binding:"required,min=2,max=100"`
	Contact string `form:"inputContact" binding:"omitempty,max=15"`
	Pincode string `form:"PINinventory" binding:"required"`
}

type RecordSupplyInput struct {
	InventoryID string `form:"id" binding:"required"`
	Quantity    int    `form:"quantity" binding:"required,gt=0"`
	Date        string `form:"date" binding:"required"`
}

type DeleteSupplyInput struct {
	SupplyID string `form:"checkbox" binding:"required"`
}

// GetInventoryForm serves the inventory registration form data.
func GetInventoryForm(c *gin.Context) {
	pincodes, err := utils.GetPincodes()
	if err != nil {
		security.SendDatabaseError(c, "Failed to load pincodes")
		return
	}
	c.JSON(http.StatusOK, gin.H{"pincodes": pincodes})
}

// RegisterInventory creates a vaccine stock source, independent of any
// hospital.
func RegisterInventory(c *gin.Context) {
	var input RegisterInventoryInput
	if err := c.ShouldBind(&input); err != nil {
		security.SendValidationError(c, "Invalid input data", err.Error())
		return
	}

	_, err := config.DB.Exec(`
		INSERT INTO inventory (id, i_name, i_contactno, i_address)
		VALUES ($1, $2, $3, $4)
	`, uuid.NewString(), input.Name, optional(input.Contact), input.Pincode)
	if err != nil {
		security.SendDatabaseError(c, "Failed to register inventory")
		return
	}

	c.Redirect(http.StatusFound, "/")
}

// GetInventoryData lists the hospital's supply ledger with billed costs
// and the remaining dose quantity.
func GetInventoryData(c *gin.Context) {
	renderInventoryData(c, 0)
}

// RecordSupply appends a shipment to the supply ledger and credits the
// hospital's remaining quantity in the same transaction.
func RecordSupply(c *gin.Context) {
	var input RecordSupplyInput
	if err := c.ShouldBind(&input); err != nil {
		security.SendValidationError(c, "Invalid input data", err.Error())
		return
	}

	suppliedAt, err := time.Parse("2006-01-02", input.Date)
	if err != nil {
		security.SendValidationError(c, "Invalid supply date", "Use YYYY-MM-DD")
		return
	}

	hospitalID := c.GetString("hospital_id")

	var inventoryExists bool
	err = config.DB.QueryRow(`SELECT EXISTS(SELECT 1 FROM inventory WHERE id = $1)`, input.InventoryID).Scan(&inventoryExists)
	if err != nil {
		security.SendDatabaseError(c, "Failed to verify inventory source")
		return
	}
	if !inventoryExists {
		// unknown source: re-render the current ledger with the error flag
		renderInventoryData(c, 1)
		return
	}

	tx, err := config.DB.Begin()
	if err != nil {
		security.SendDatabaseError(c, "Failed to start transaction")
		return
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO supplies (id, hospital_id, inventory_id, s_quantity, s_time)
		VALUES ($1, $2, $3, $4, $5)
	`, uuid.NewString(), hospitalID, input.InventoryID, input.Quantity, suppliedAt)
	if err != nil {
		security.SendDatabaseError(c, "Failed to record supply")
		return
	}

	// the counter moves together with its ledger entry
	_, err = tx.Exec(`
		UPDATE hospital SET quantity_remaining = quantity_remaining + $1 WHERE id = $2
	`, input.Quantity, hospitalID)
	if err != nil {
		security.SendDatabaseError(c, "Failed to update remaining quantity")
		return
	}

	if err = tx.Commit(); err != nil {
		security.SendDatabaseError(c, "Failed to record supply")
		return
	}

	c.Redirect(http.StatusFound, "/inventory_data")
}

// DeleteSupply removes a supply record scoped to the authenticated
// hospital. The remaining-quantity counter is left untouched: deletion is
// record removal, not a return shipment.
func DeleteSupply(c *gin.Context) {
	var input DeleteSupplyInput
	if err := c.ShouldBind(&input); err != nil {
		security.SendValidationError(c, "Invalid input data", err.Error())
		return
	}

	hospitalID := c.GetString("hospital_id")
	_, err := config.DB.Exec(`
		DELETE FROM supplies WHERE id = $1 AND hospital_id = $2
	`, input.SupplyID, hospitalID)
	if err != nil {
		security.SendDatabaseError(c, "Failed to delete supply record")
		return
	}

	c.Redirect(http.StatusFound, "/inventory_data")
}

func renderInventoryData(c *gin.Context, check int) {
	hospitalID := c.GetString("hospital_id")

	details, err := utils.GetSupplyDetails(hospitalID)
	if err != nil {
		security.SendDatabaseError(c, "Failed to load supply records")
		return
	}

	var remaining int
	err = config.DB.QueryRow(`SELECT quantity_remaining FROM hospital WHERE id = $1`, hospitalID).Scan(&remaining)
	if err != nil {
		security.SendDatabaseError(c, "Failed to load remaining quantity")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"inventory": details,
		"quant_rem": remaining,
		"check":     check,
	})
}
